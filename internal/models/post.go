package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents an image post stored in MongoDB. Upvotes is a set of user
// ids (the author may never appear in it). CommentIDs tracks root comments
// only; replies live exclusively under their parent in the comments
// collection, so the comment count shown to users is the root count.
type Post struct {
	ID              primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string               `json:"title" bson:"title"`
	ImageURL        string               `json:"image_url" bson:"image_url"`
	ImageStorageKey string               `json:"-" bson:"image_storage_key"`
	UserID          primitive.ObjectID   `json:"user_id" bson:"user_id"`
	Upvotes         []primitive.ObjectID `json:"upvotes" bson:"upvotes"`
	CommentIDs      []primitive.ObjectID `json:"comment_ids" bson:"comments"`
	Status          Status               `json:"status" bson:"status"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasUpvoted reports whether userID is in the post's upvote set.
func (p *Post) HasUpvoted(userID primitive.ObjectID) bool {
	for _, u := range p.Upvotes {
		if u == userID {
			return true
		}
	}
	return false
}

// AuthorRef is the compact author shape embedded in post and comment views.
type AuthorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PostView is the annotated post shape returned by listing and detail
// endpoints. HasUpvoted is computed against the caller's identity and is
// false for anonymous requests.
type PostView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ImageURL      string    `json:"imageUrl"`
	Author        AuthorRef `json:"author"`
	UpvotesCount  int       `json:"upvotesCount"`
	CommentsCount int       `json:"commentsCount"`
	HasUpvoted    bool      `json:"hasUpvoted"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// View builds the annotated shape for a post.
func (p *Post) View(author AuthorRef, callerID primitive.ObjectID) PostView {
	return PostView{
		ID:            p.ID.Hex(),
		Title:         p.Title,
		ImageURL:      p.ImageURL,
		Author:        author,
		UpvotesCount:  len(p.Upvotes),
		CommentsCount: len(p.CommentIDs),
		HasUpvoted:    !callerID.IsZero() && p.HasUpvoted(callerID),
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}

// Feed sort orders accepted by the post listing.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)
