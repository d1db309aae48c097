package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents one entry of a post's discussion, stored flat in MongoDB
// with a parent pointer. A nil ParentCommentID marks a root comment. Parents
// are always strictly earlier-created ids, so the parent pointers can never
// form a cycle.
type Comment struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Content         string              `json:"content" bson:"content"`
	UserID          primitive.ObjectID  `json:"user_id" bson:"user_id"`
	PostID          primitive.ObjectID  `json:"post_id" bson:"post_id"`
	ParentCommentID *primitive.ObjectID `json:"parent_comment_id,omitempty" bson:"parent_comment_id,omitempty"`
	Status          Status              `json:"status" bson:"status"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsRoot reports whether the comment is attached directly to its post.
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=1000"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}
