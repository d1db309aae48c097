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

// UserRepository defines the interface for user data operations. The edge
// mutators are atomic set updates, not read-modify-write round trips, so
// concurrent follow toggles cannot lose updates.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error)
	GetPopularUsers(ctx context.Context, limit int64) ([]models.User, error)
	AddFollowing(ctx context.Context, userID, targetID string) error
	RemoveFollowing(ctx context.Context, userID, targetID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	PruneUserEdges(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, id string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user in MongoDB
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format")
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username from MongoDB
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs retrieves the users whose ids are in the given set
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers searches users by username substring (case-insensitive)
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	filter := bson.M{"username": bson.M{"$regex": query, "$options": "i"}}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "username", Value: 1}})

	var users []models.User
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetPopularUsers returns users ordered by follower count descending
func (r *MongoUserRepository) GetPopularUsers(ctx context.Context, limit int64) ([]models.User, error) {
	pipeline := []bson.M{
		{"$addFields": bson.M{"followers_count": bson.M{"$size": "$followers"}}},
		{"$sort": bson.M{"followers_count": -1, "created_at": -1}},
		{"$limit": limit},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddFollowing atomically adds targetID to userID's following set
func (r *MongoUserRepository) AddFollowing(ctx context.Context, userID, targetID string) error {
	return r.updateEdge(ctx, userID, "$addToSet", "following", targetID)
}

// RemoveFollowing atomically removes targetID from userID's following set
func (r *MongoUserRepository) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return r.updateEdge(ctx, userID, "$pull", "following", targetID)
}

// AddFollower atomically adds followerID to userID's followers set
func (r *MongoUserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.updateEdge(ctx, userID, "$addToSet", "followers", followerID)
}

// RemoveFollower atomically removes followerID from userID's followers set
func (r *MongoUserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.updateEdge(ctx, userID, "$pull", "followers", followerID)
}

func (r *MongoUserRepository) updateEdge(ctx context.Context, userID, op, field, otherID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	otherObjID, err := primitive.ObjectIDFromHex(otherID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		op:     bson.M{field: otherObjID},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// PruneUserEdges removes userID from every other user's follower and
// following sets. Used when a user is deleted.
func (r *MongoUserRepository) PruneUserEdges(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}

	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"followers": objID},
		bson.M{"$pull": bson.M{"followers": objID}},
	); err != nil {
		return err
	}
	_, err = r.collection.UpdateMany(ctx,
		bson.M{"following": objID},
		bson.M{"$pull": bson.M{"following": objID}},
	)
	return err
}

// DeleteUser deletes a user by ID. Deleting an absent user is a no-op.
func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.Validation("invalid user ID format")
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}
