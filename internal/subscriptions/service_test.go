package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
)

type stubRepo struct {
	listRows []Subscription
	listErr  error
	inserted *Subscription
	insertID primitive.ObjectID
	err      error
}

func (s *stubRepo) List(ctx context.Context) ([]Subscription, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

func (s *stubRepo) Insert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	sub.ID = s.insertID
	s.inserted = sub
	return sub, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:      "Netflix",
		Link:      "https://netflix.com",
		Email:     "a@b.com",
		Password:  "x",
		CreatedAt: "2024-01-01",
		EndedAt:   "2024-01-15",
	}
}

func newTestService(t *testing.T, repo *stubRepo, now time.Time) *service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	typed := svc.(*service)
	typed.now = func() time.Time { return now }
	return typed
}

func TestCreateForcesActiveStatusAndUpdatedAt(t *testing.T) {
	repo := &stubRepo{insertID: primitive.NewObjectID()}
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	svc := newTestService(t, repo, now)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Status != StatusActive {
		t.Fatalf("expected status active, got %s", created.Status)
	}
	if created.UpdatedAt != "2024-01-02T15:04:05Z" {
		t.Fatalf("unexpected updatedAt %q", created.UpdatedAt)
	}
	if created.ID.IsZero() {
		t.Fatal("expected store-assigned id")
	}
	if created.CreatedAt != "2024-01-01" || created.EndedAt != "2024-01-15" {
		t.Fatalf("caller-supplied dates must be stored verbatim, got %q/%q", created.CreatedAt, created.EndedAt)
	}
}

func TestCreateMissingFieldIsValidationErrorWithoutInsert(t *testing.T) {
	fields := []string{"name", "link", "email", "password", "createdAt", "endedAt"}
	for _, field := range fields {
		repo := &stubRepo{insertID: primitive.NewObjectID()}
		svc := newTestService(t, repo, time.Now())

		input := validCreateInput()
		switch field {
		case "name":
			input.Name = ""
		case "link":
			input.Link = ""
		case "email":
			input.Email = ""
		case "password":
			input.Password = ""
		case "createdAt":
			input.CreatedAt = ""
		case "endedAt":
			input.EndedAt = "   "
		}

		_, err := svc.Create(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("field %s: expected validation error, got %v", field, err)
		}
		if repo.inserted != nil {
			t.Fatalf("field %s: no document may be inserted on validation failure", field)
		}
	}
}

func TestCreateRepoFailureIsDependencyError(t *testing.T) {
	repo := &stubRepo{err: errors.New("server selection timeout")}
	svc := newTestService(t, repo, time.Now())

	_, err := svc.Create(context.Background(), validCreateInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, time.Now())

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil {
		t.Fatal("list must serialize as [] rather than null")
	}
}

func TestListRepoFailureIsDependencyError(t *testing.T) {
	svc := newTestService(t, &stubRepo{listErr: errors.New("down")}, time.Now())

	_, err := svc.List(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
