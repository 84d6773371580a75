package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "users"

// Patch is the whitelisted subset of user fields that can change after
// creation. Empty strings mean "leave as-is"; UpdatedAt is always set.
type Patch struct {
	SubscriptionID string
	EndedAt        string
	UpdatedAt      string
}

// Repository exposes user persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs a user repository tied to the provided database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection(collectionName)}
}

// List returns every user document in store-native order.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var rows []User
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert writes a new user document and fills in the store-assigned id.
func (r *Repository) Insert(ctx context.Context, user *User) (*User, error) {
	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// UpdateByID merges the supplied patch into the document and returns the
// post-update state. A malformed or unknown id yields mongo.ErrNoDocuments.
func (r *Repository) UpdateByID(ctx context.Context, id string, patch Patch) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.SubscriptionID != "" {
		set["suscriptionId"] = patch.SubscriptionID
	}
	if patch.EndedAt != "" {
		set["endedAt"] = patch.EndedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
