package repositories

import (
	"context"
	"time"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/apperr"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations. Upvote and
// root-comment mutators are atomic set updates on the post document.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string, includeHidden bool, skip, limit int64) ([]models.Post, error)
	ListVisiblePosts(ctx context.Context, sortBy string, skip, limit int64) ([]models.Post, error)
	CountVisiblePosts(ctx context.Context) (int64, error)
	ListPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPostsByUserID(ctx context.Context, userID string, includeHidden bool) (int64, error)
	GetPostsByAuthorIDs(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error)
	AddUpvote(ctx context.Context, postID, userID string) error
	RemoveUpvote(ctx context.Context, postID, userID string) error
	AddRootComment(ctx context.Context, postID, commentID string) error
	RemoveRootComment(ctx context.Context, postID, commentID string) error
	SetStatus(ctx context.Context, postID string, status models.Status) error
	SetStatusMany(ctx context.Context, ids []string, status models.Status) (int64, error)
	DeletePost(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	PullUpvotesByUser(ctx context.Context, userID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Upvotes == nil {
		post.Upvotes = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	if post.Status == "" {
		post.Status = models.StatusActive
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid post ID format")
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByIDs retrieves the posts whose ids are in the given set. Unknown
// ids are skipped, not errored.
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	objIDs := hexToObjectIDs(ids)
	if len(objIDs) == 0 {
		return []models.Post{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves posts by a specific user. A limit of 0 returns
// all of them.
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string, includeHidden bool, skip, limit int64) ([]models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}

	filter := bson.M{"user_id": objID}
	if !includeHidden {
		filter["status"] = bson.M{"$ne": models.StatusHidden}
	}

	findOptions := options.Find().SetSkip(skip).SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListVisiblePosts returns a page of posts excluding hidden ones. Reported
// posts stay visible. The popular sort orders by upvote-set size descending
// with newest-first tiebreak.
func (r *MongoPostRepository) ListVisiblePosts(ctx context.Context, sortBy string, skip, limit int64) ([]models.Post, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$ne": models.StatusHidden}}},
		{"$addFields": bson.M{"upvotes_count": bson.M{"$size": "$upvotes"}}},
	}

	switch sortBy {
	case models.SortPopular:
		pipeline = append(pipeline, bson.M{"$sort": bson.M{"upvotes_count": -1, "created_at": -1}})
	case models.SortOldest:
		pipeline = append(pipeline, bson.M{"$sort": bson.M{"created_at": 1}})
	default:
		pipeline = append(pipeline, bson.M{"$sort": bson.M{"created_at": -1}})
	}

	pipeline = append(pipeline, bson.M{"$skip": skip}, bson.M{"$limit": limit})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountVisiblePosts counts posts under the same filter as ListVisiblePosts
func (r *MongoPostRepository) CountVisiblePosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": bson.M{"$ne": models.StatusHidden}})
}

// ListPosts returns a page of all posts regardless of status, newest first.
// Used by the admin moderation listing.
func (r *MongoPostRepository) ListPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts counts all posts regardless of status
func (r *MongoPostRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// CountPostsByUserID counts a user's posts under the same visibility filter
// as GetPostsByUserID.
func (r *MongoPostRepository) CountPostsByUserID(ctx context.Context, userID string, includeHidden bool) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, apperr.Validation("invalid user ID format")
	}

	filter := bson.M{"user_id": objID}
	if !includeHidden {
		filter["status"] = bson.M{"$ne": models.StatusHidden}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// GetPostsByAuthorIDs returns non-hidden posts authored by any of the given
// users, newest first, capped at limit.
func (r *MongoPostRepository) GetPostsByAuthorIDs(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	filter := bson.M{
		"user_id": bson.M{"$in": authorIDs},
		"status":  bson.M{"$ne": models.StatusHidden},
	}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddUpvote atomically adds userID to the post's upvote set
func (r *MongoPostRepository) AddUpvote(ctx context.Context, postID, userID string) error {
	return r.updateSet(ctx, postID, "$addToSet", "upvotes", userID)
}

// RemoveUpvote atomically removes userID from the post's upvote set
func (r *MongoPostRepository) RemoveUpvote(ctx context.Context, postID, userID string) error {
	return r.updateSet(ctx, postID, "$pull", "upvotes", userID)
}

// AddRootComment atomically adds a root comment id to the post's comment list
func (r *MongoPostRepository) AddRootComment(ctx context.Context, postID, commentID string) error {
	return r.updateSet(ctx, postID, "$addToSet", "comments", commentID)
}

// RemoveRootComment atomically removes a root comment id from the post's
// comment list. Removing an id that is not present is a no-op.
func (r *MongoPostRepository) RemoveRootComment(ctx context.Context, postID, commentID string) error {
	return r.updateSet(ctx, postID, "$pull", "comments", commentID)
}

func (r *MongoPostRepository) updateSet(ctx context.Context, postID, op, field, memberID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}
	memberObjID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return apperr.Validation("invalid ID format")
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		op:     bson.M{field: memberObjID},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// SetStatus sets the moderation status of a single post
func (r *MongoPostRepository) SetStatus(ctx context.Context, postID string, status models.Status) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

// SetStatusMany sets the status on every post in ids, returning the number
// of posts matched.
func (r *MongoPostRepository) SetStatusMany(ctx context.Context, ids []string, status models.Status) (int64, error) {
	objIDs := hexToObjectIDs(ids)
	if len(objIDs) == 0 {
		return 0, nil
	}

	res, err := r.collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeletePost deletes a post by ID. Deleting an absent post is a no-op.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid post ID format")
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// DeleteMany deletes every post in ids, returning the number removed
func (r *MongoPostRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	objIDs := hexToObjectIDs(ids)
	if len(objIDs) == 0 {
		return 0, nil
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PullUpvotesByUser removes userID from every post's upvote set. Used when a
// user is deleted.
func (r *MongoPostRepository) PullUpvotesByUser(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	_, err = r.collection.UpdateMany(ctx,
		bson.M{"upvotes": objID},
		bson.M{"$pull": bson.M{"upvotes": objID}},
	)
	return err
}

// hexToObjectIDs converts hex ids, silently dropping malformed ones
func hexToObjectIDs(ids []string) []primitive.ObjectID {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	return objIDs
}
