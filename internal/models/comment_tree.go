package models

import "time"

// CommentNode is one node of the nested reply structure returned to clients.
// Replies hold direct children in creation order.
type CommentNode struct {
	ID              string         `json:"id"`
	Content         string         `json:"content"`
	Author          AuthorRef      `json:"author"`
	ParentCommentID string         `json:"parentCommentId,omitempty"`
	Status          Status         `json:"status"`
	Replies         []*CommentNode `json:"replies"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// BuildCommentTree turns a flat, creation-ordered comment list into a forest
// of root comments with recursively populated replies.
//
// Two passes: the first indexes every comment by id and collects roots, the
// second appends each child to its parent's reply list. Input order is
// preserved at every level, so siblings stay in chronological order. A
// comment whose parent is absent from the input (deleted underneath a
// concurrent fetch) is dropped from the output rather than promoted or
// surfaced as an error.
func BuildCommentTree(comments []Comment, authors map[string]string) []*CommentNode {
	index := make(map[string]*CommentNode, len(comments))
	roots := make([]*CommentNode, 0)

	for i := range comments {
		c := &comments[i]
		node := &CommentNode{
			ID:      c.ID.Hex(),
			Content: c.Content,
			Author: AuthorRef{
				ID:       c.UserID.Hex(),
				Username: authors[c.UserID.Hex()],
			},
			Status:    c.Status,
			Replies:   []*CommentNode{},
			CreatedAt: c.CreatedAt,
		}
		if c.ParentCommentID != nil {
			node.ParentCommentID = c.ParentCommentID.Hex()
		}

		index[node.ID] = node
		if c.IsRoot() {
			roots = append(roots, node)
		}
	}

	for i := range comments {
		c := &comments[i]
		if c.ParentCommentID == nil {
			continue
		}
		parent, ok := index[c.ParentCommentID.Hex()]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, index[c.ID.Hex()])
	}

	return roots
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(forest []*CommentNode) int {
	n := 0
	for _, root := range forest {
		n += 1 + CountNodes(root.Replies)
	}
	return n
}
