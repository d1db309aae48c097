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

// CommentRepository defines the interface for comment data operations.
// Comments are stored flat with parent pointers; tree construction and
// subtree discovery are built on GetCommentsByPostID and
// GetCommentsByParentIDs. Every delete is idempotent against already-gone
// ids.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	GetCommentsByIDs(ctx context.Context, ids []string) ([]models.Comment, error)
	GetCommentsByParentIDs(ctx context.Context, parentIDs []string) ([]models.Comment, error)
	GetCommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error)
	ListComments(ctx context.Context, skip, limit int64) ([]models.Comment, error)
	CountComments(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, id string, status models.Status) error
	SetStatusMany(ctx context.Context, ids []string, status models.Status) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	DeleteByPostID(ctx context.Context, postID string) (int64, error)
	DeleteByPostIDs(ctx context.Context, postIDs []string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.Status == "" {
		comment.Status = models.StatusActive
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid comment ID format")
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post in creation order,
// the shape BuildCommentTree expects.
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperr.Validation("invalid post ID format")
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByIDs retrieves the comments whose ids are in the given set
func (r *MongoCommentRepository) GetCommentsByIDs(ctx context.Context, ids []string) ([]models.Comment, error) {
	objIDs := hexToObjectIDs(ids)
	if len(objIDs) == 0 {
		return []models.Comment{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByParentIDs retrieves the direct replies of every comment in
// parentIDs, one level of the subtree at a time.
func (r *MongoCommentRepository) GetCommentsByParentIDs(ctx context.Context, parentIDs []string) ([]models.Comment, error) {
	objIDs := hexToObjectIDs(parentIDs)
	if len(objIDs) == 0 {
		return []models.Comment{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"parent_comment_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByUserID retrieves every comment authored by a user
func (r *MongoCommentRepository) GetCommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": objID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListComments returns a page of all comments, newest first. Used by the
// admin moderation listing.
func (r *MongoCommentRepository) ListComments(ctx context.Context, skip, limit int64) ([]models.Comment, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountComments counts all comments
func (r *MongoCommentRepository) CountComments(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// SetStatus sets the moderation status of a single comment
func (r *MongoCommentRepository) SetStatus(ctx context.Context, id string, status models.Status) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid comment ID format")
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("comment not found")
	}
	return nil
}

// SetStatusMany sets the status on every comment in ids
func (r *MongoCommentRepository) SetStatusMany(ctx context.Context, ids []string, status models.Status) (int64, error) {
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

// DeleteByIDs deletes every comment in ids, returning the number actually
// removed. Already-deleted ids simply do not count.
func (r *MongoCommentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
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

// DeleteByPostID deletes every comment of a post in one pass. Removing by
// post id takes all depth levels at once, equivalent in effect to deleting
// each root subtree recursively.
func (r *MongoCommentRepository) DeleteByPostID(ctx context.Context, postID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return 0, apperr.Validation("invalid post ID format")
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{"post_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPostIDs deletes every comment belonging to any post in postIDs
func (r *MongoCommentRepository) DeleteByPostIDs(ctx context.Context, postIDs []string) (int64, error) {
	objIDs := hexToObjectIDs(postIDs)
	if len(objIDs) == 0 {
		return 0, nil
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{"post_id": bson.M{"$in": objIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUserID deletes every comment authored by a user
func (r *MongoCommentRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, apperr.Validation("invalid user ID format")
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{"user_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
