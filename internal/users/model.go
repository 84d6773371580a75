package users

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/angelmondragon/subtrack/internal/subscriptions"
)

// Status is the lifecycle state of an end user. Nothing transitions it yet;
// every created user is "active".
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is the stored shape of one end user assigned to a shared
// subscription. SubscriptionID is a reference by identifier, not an
// ownership relation: the stored field keeps the historical "suscriptionId"
// spelling the collection has always used. EndedAt is the user's own
// access-expiry date, independent of the referenced subscription's window.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	Phone          *string            `bson:"phone"`
	SubscriptionID string             `bson:"suscriptionId"`
	Status         Status             `bson:"status"`
	CreatedAt      string             `bson:"createdAt"`
	UpdatedAt      string             `bson:"updatedAt"`
	EndedAt        string             `bson:"endedAt"`
}

// WithSubscription pairs a user with its resolved subscription. Subscription
// is nil when the reference is absent or dangling; that is a normal display
// state, never an error.
type WithSubscription struct {
	User
	Subscription *subscriptions.Subscription
}
