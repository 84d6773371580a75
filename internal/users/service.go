package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/angelmondragon/subtrack/internal/subscriptions"
	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
)

type repository interface {
	List(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, user *User) (*User, error)
	UpdateByID(ctx context.Context, id string, patch Patch) (*User, error)
}

// subscriptionDirectory is the slice of the subscription repository the user
// service needs for its joins.
type subscriptionDirectory interface {
	List(ctx context.Context) ([]subscriptions.Subscription, error)
	FindByID(ctx context.Context, id string) (*subscriptions.Subscription, error)
}

// Service exposes user listing, creation, and update semantics.
type Service interface {
	List(ctx context.Context) ([]WithSubscription, error)
	Create(ctx context.Context, input CreateInput) (*WithSubscription, error)
	Update(ctx context.Context, id string, input UpdateInput) (*WithSubscription, error)
}

type service struct {
	repo repository
	subs subscriptionDirectory
	now  func() time.Time
}

// CreateInput holds the caller-supplied fields of a new user. Phone is
// optional and stored as null when empty.
type CreateInput struct {
	Name           string
	Email          string
	Phone          string
	SubscriptionID string
	EndedAt        string
}

// UpdateInput is a partial update; empty fields are left untouched. At
// least one field must be supplied.
type UpdateInput struct {
	SubscriptionID string
	EndedAt        string
}

// NewService builds a user service backed by the provided repositories.
func NewService(repo repository, subs subscriptionDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if subs == nil {
		return nil, fmt.Errorf("subscription directory required")
	}
	return &service{
		repo: repo,
		subs: subs,
		now:  time.Now,
	}, nil
}

// List joins every user against the full subscription set in memory. The
// collections stay small enough that the preload-and-map approach beats a
// store-level lookup here.
func (s *service) List(ctx context.Context) ([]WithSubscription, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions for join")
	}

	byID := make(map[string]*subscriptions.Subscription, len(subs))
	for i := range subs {
		byID[subs[i].ID.Hex()] = &subs[i]
	}

	items := make([]WithSubscription, len(rows))
	for i, row := range rows {
		items[i] = WithSubscription{
			User:         row,
			Subscription: byID[row.SubscriptionID],
		}
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*WithSubscription, error) {
	missing := map[string]string{}
	for field, value := range map[string]string{
		"name":          input.Name,
		"email":         input.Email,
		"suscriptionId": input.SubscriptionID,
		"endedAt":       input.EndedAt,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "is required"
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email, subscription and end date are required").WithDetails(missing)
	}

	now := s.now().UTC().Format(time.RFC3339)

	var phone *string
	if input.Phone != "" {
		phone = &input.Phone
	}

	user := &User{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          phone,
		SubscriptionID: input.SubscriptionID,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
		EndedAt:        input.EndedAt,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	sub, err := s.resolveSubscription(ctx, created.SubscriptionID)
	if err != nil {
		return nil, err
	}
	return &WithSubscription{User: *created, Subscription: sub}, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*WithSubscription, error) {
	if strings.TrimSpace(input.SubscriptionID) == "" && strings.TrimSpace(input.EndedAt) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one of suscriptionId or endedAt must be provided")
	}

	patch := Patch{
		SubscriptionID: input.SubscriptionID,
		EndedAt:        input.EndedAt,
		UpdatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	sub, err := s.resolveSubscription(ctx, updated.SubscriptionID)
	if err != nil {
		return nil, err
	}
	return &WithSubscription{User: *updated, Subscription: sub}, nil
}

// resolveSubscription embeds the referenced subscription, soft-failing to
// nil when the reference is empty, malformed, or dangling.
func (s *service) resolveSubscription(ctx context.Context, id string) (*subscriptions.Subscription, error) {
	if id == "" {
		return nil, nil
	}
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve subscription")
	}
	return sub, nil
}
