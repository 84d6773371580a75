package subscriptions

import "go.mongodb.org/mongo-driver/bson/primitive"

// Status is the lifecycle state of a shared subscription. Only "active" is
// ever written today; the remaining values are reserved for a blocking
// feature that has no transition path yet.
type Status string

const (
	StatusActive   Status = "active"
	StatusBlocked  Status = "blocked"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

// Subscription is the stored shape of one shared-account credential set.
// CreatedAt and EndedAt are the subscription's own validity window, supplied
// by the caller as ISO-8601 strings and stored verbatim; UpdatedAt is
// server-assigned on every write.
type Subscription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Link      string             `bson:"link"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Status    Status             `bson:"status"`
	BlockedAt *string            `bson:"blockedAt,omitempty"`
	EndedAt   string             `bson:"endedAt"`
	CreatedAt string             `bson:"createdAt"`
	UpdatedAt string             `bson:"updatedAt"`
}
