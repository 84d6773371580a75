package subscriptions

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "subscriptions"

// Repository exposes subscription persistence operations.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository constructs a subscription repository tied to the provided database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection(collectionName)}
}

// List returns every subscription document in store-native order.
func (r *Repository) List(ctx context.Context) ([]Subscription, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var rows []Subscription
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert writes a new subscription document and fills in the store-assigned id.
func (r *Repository) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	result, err := r.coll.InsertOne(ctx, sub)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return sub, nil
}

// FindByID resolves a subscription by its hex id. A malformed id behaves
// like an absent document so that dangling references stay a display state,
// not an error.
func (r *Repository) FindByID(ctx context.Context, id string) (*Subscription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var sub Subscription
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
