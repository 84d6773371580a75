package subscriptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
)

type repository interface {
	List(ctx context.Context) ([]Subscription, error)
	Insert(ctx context.Context, sub *Subscription) (*Subscription, error)
}

// Service exposes subscription listing and creation semantics.
type Service interface {
	List(ctx context.Context) ([]Subscription, error)
	Create(ctx context.Context, input CreateInput) (*Subscription, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// CreateInput holds the caller-supplied fields of a new subscription. All
// fields are required; duplicates are permitted.
type CreateInput struct {
	Name      string
	Link      string
	Email     string
	Password  string
	CreatedAt string
	EndedAt   string
}

// NewService builds a subscription service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscription repository required")
	}
	return &service{
		repo: repo,
		now:  time.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]Subscription, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	if rows == nil {
		rows = []Subscription{}
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Subscription, error) {
	missing := map[string]string{}
	for field, value := range map[string]string{
		"name":      input.Name,
		"link":      input.Link,
		"email":     input.Email,
		"password":  input.Password,
		"createdAt": input.CreatedAt,
		"endedAt":   input.EndedAt,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "is required"
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "all fields are required").WithDetails(missing)
	}

	sub := &Subscription{
		Name:      input.Name,
		Link:      input.Link,
		Email:     input.Email,
		Password:  input.Password,
		Status:    StatusActive,
		CreatedAt: input.CreatedAt,
		EndedAt:   input.EndedAt,
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}

	created, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
	}
	return created, nil
}
