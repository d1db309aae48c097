package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostView(t *testing.T) {
	author := primitive.NewObjectID()
	voter := primitive.NewObjectID()
	rootComment := primitive.NewObjectID()

	p := Post{
		ID:         primitive.NewObjectID(),
		Title:      "golden hour",
		ImageURL:   "https://storage.example.com/rjilat/posts/abc",
		UserID:     author,
		Upvotes:    []primitive.ObjectID{voter},
		CommentIDs: []primitive.ObjectID{rootComment},
		Status:     StatusActive,
		CreatedAt:  time.Now(),
	}
	ref := AuthorRef{ID: author.Hex(), Username: "bea"}

	asVoter := p.View(ref, voter)
	assert.True(t, asVoter.HasUpvoted)
	assert.Equal(t, 1, asVoter.UpvotesCount)
	assert.Equal(t, 1, asVoter.CommentsCount)
	assert.Equal(t, "bea", asVoter.Author.Username)

	asStranger := p.View(ref, primitive.NewObjectID())
	assert.False(t, asStranger.HasUpvoted)

	// Anonymous callers carry the zero id and never count as upvoters.
	anonymous := p.View(ref, primitive.NilObjectID)
	assert.False(t, anonymous.HasUpvoted)
}

func TestUserIsFollowing(t *testing.T) {
	target := primitive.NewObjectID()
	u := User{Following: []primitive.ObjectID{target}}

	assert.True(t, u.IsFollowing(target))
	assert.False(t, u.IsFollowing(primitive.NewObjectID()))
}
