package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/angelmondragon/subtrack/internal/subscriptions"
	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
)

type stubUserRepo struct {
	listRows  []User
	listErr   error
	inserted  *User
	insertID  primitive.ObjectID
	insertErr error

	updateResult *User
	updateErr    error
	lastPatch    Patch
	lastUpdateID string
	updateCalls  int
}

func (s *stubUserRepo) List(ctx context.Context) ([]User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

func (s *stubUserRepo) Insert(ctx context.Context, user *User) (*User, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	user.ID = s.insertID
	s.inserted = user
	return user, nil
}

func (s *stubUserRepo) UpdateByID(ctx context.Context, id string, patch Patch) (*User, error) {
	s.updateCalls++
	s.lastUpdateID = id
	s.lastPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updateResult == nil {
		return nil, mongo.ErrNoDocuments
	}
	result := *s.updateResult
	if patch.SubscriptionID != "" {
		result.SubscriptionID = patch.SubscriptionID
	}
	if patch.EndedAt != "" {
		result.EndedAt = patch.EndedAt
	}
	result.UpdatedAt = patch.UpdatedAt
	s.updateResult = &result
	return &result, nil
}

type stubDirectory struct {
	subs    []subscriptions.Subscription
	listErr error
	findErr error
}

func (s *stubDirectory) List(ctx context.Context) ([]subscriptions.Subscription, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.subs, nil
}

func (s *stubDirectory) FindByID(ctx context.Context, id string) (*subscriptions.Subscription, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.subs {
		if s.subs[i].ID.Hex() == id {
			return &s.subs[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func newTestService(t *testing.T, repo *stubUserRepo, subs *stubDirectory, now time.Time) *service {
	t.Helper()
	svc, err := NewService(repo, subs)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	typed := svc.(*service)
	typed.now = func() time.Time { return now }
	return typed
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
}

func TestListEmbedsFullSubscriptionForValidReference(t *testing.T) {
	sub := subscriptions.Subscription{
		ID:       primitive.NewObjectID(),
		Name:     "Netflix",
		Email:    "a@b.com",
		Password: "x",
		Status:   subscriptions.StatusActive,
	}
	repo := &stubUserRepo{listRows: []User{
		{ID: primitive.NewObjectID(), Name: "Ana", SubscriptionID: sub.ID.Hex()},
		{ID: primitive.NewObjectID(), Name: "Luis", SubscriptionID: primitive.NewObjectID().Hex()},
	}}
	svc := newTestService(t, repo, &stubDirectory{subs: []subscriptions.Subscription{sub}}, fixedNow())

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two users, got %d", len(items))
	}

	if items[0].Subscription == nil {
		t.Fatal("valid reference must embed the subscription, never nil")
	}
	if items[0].Subscription.Name != "Netflix" {
		t.Fatalf("expected full subscription record, got %+v", items[0].Subscription)
	}
	if items[1].Subscription != nil {
		t.Fatal("dangling reference must embed nil, not an error")
	}
}

func TestCreateForcesActiveStatusAndTimestamps(t *testing.T) {
	repo := &stubUserRepo{insertID: primitive.NewObjectID()}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	created, err := svc.Create(context.Background(), CreateInput{
		Name:           "Ana",
		Email:          "ana@example.com",
		SubscriptionID: primitive.NewObjectID().Hex(),
		EndedAt:        "2024-04-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Status != StatusActive {
		t.Fatalf("expected status active, got %s", created.Status)
	}
	if created.CreatedAt != "2024-03-10T09:00:00Z" || created.UpdatedAt != "2024-03-10T09:00:00Z" {
		t.Fatalf("expected server-assigned timestamps, got %q/%q", created.CreatedAt, created.UpdatedAt)
	}
	if created.Phone != nil {
		t.Fatal("omitted phone must be stored as null")
	}
}

func TestCreateSoftFailsOnNonexistentSubscription(t *testing.T) {
	repo := &stubUserRepo{insertID: primitive.NewObjectID()}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	created, err := svc.Create(context.Background(), CreateInput{
		Name:           "Ana",
		Email:          "ana@example.com",
		SubscriptionID: primitive.NewObjectID().Hex(),
		EndedAt:        "2024-04-01",
	})
	if err != nil {
		t.Fatalf("nonexistent reference must not fail the create: %v", err)
	}
	if created.Subscription != nil {
		t.Fatal("nonexistent reference must resolve to nil")
	}
}

func TestCreateMissingFieldIsValidationErrorWithoutInsert(t *testing.T) {
	repo := &stubUserRepo{insertID: primitive.NewObjectID()}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	_, err := svc.Create(context.Background(), CreateInput{Name: "Ana", Phone: "123"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.inserted != nil {
		t.Fatal("no document may be inserted on validation failure")
	}
}

func TestCreateKeepsSuppliedPhone(t *testing.T) {
	repo := &stubUserRepo{insertID: primitive.NewObjectID()}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	created, err := svc.Create(context.Background(), CreateInput{
		Name:           "Ana",
		Email:          "ana@example.com",
		Phone:          "555-0134",
		SubscriptionID: primitive.NewObjectID().Hex(),
		EndedAt:        "2024-04-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Phone == nil || *created.Phone != "555-0134" {
		t.Fatalf("expected phone preserved, got %v", created.Phone)
	}
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("store must stay untouched when no field is supplied")
	}
}

func TestUpdateUnknownUserIsNotFound(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateInput{EndedAt: "2024-05-01"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	existing := &User{
		ID:             primitive.NewObjectID(),
		Name:           "Ana",
		SubscriptionID: primitive.NewObjectID().Hex(),
		EndedAt:        "2024-04-01",
	}
	repo := &stubUserRepo{updateResult: existing}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	updated, err := svc.Update(context.Background(), existing.ID.Hex(), UpdateInput{EndedAt: "2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastPatch.SubscriptionID != "" {
		t.Fatal("untouched field must not be part of the patch")
	}
	if updated.EndedAt != "2024-05-01" {
		t.Fatalf("expected endedAt merged, got %q", updated.EndedAt)
	}
	if updated.UpdatedAt != "2024-03-10T09:00:00Z" {
		t.Fatalf("expected updatedAt bumped, got %q", updated.UpdatedAt)
	}
	if updated.SubscriptionID != existing.SubscriptionID {
		t.Fatal("prior subscription reference must be retained")
	}
}

func TestUpdateIsIdempotentExceptUpdatedAt(t *testing.T) {
	existing := &User{
		ID:      primitive.NewObjectID(),
		Name:    "Ana",
		EndedAt: "2024-04-01",
	}
	repo := &stubUserRepo{updateResult: existing}
	svc := newTestService(t, repo, &stubDirectory{}, fixedNow())

	input := UpdateInput{EndedAt: "2024-05-01"}
	first, err := svc.Update(context.Background(), existing.ID.Hex(), input)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}

	svc.now = func() time.Time { return fixedNow().Add(time.Hour) }
	second, err := svc.Update(context.Background(), existing.ID.Hex(), input)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if first.EndedAt != second.EndedAt || first.SubscriptionID != second.SubscriptionID {
		t.Fatal("repeating an identical update must yield the same stored state")
	}
	if first.UpdatedAt == second.UpdatedAt {
		t.Fatal("updatedAt should differ between the two responses")
	}
}

func TestUpdateResolvesNewReferenceSoftly(t *testing.T) {
	sub := subscriptions.Subscription{ID: primitive.NewObjectID(), Name: "Spotify"}
	existing := &User{ID: primitive.NewObjectID(), Name: "Ana"}
	repo := &stubUserRepo{updateResult: existing}
	svc := newTestService(t, repo, &stubDirectory{subs: []subscriptions.Subscription{sub}}, fixedNow())

	updated, err := svc.Update(context.Background(), existing.ID.Hex(), UpdateInput{SubscriptionID: sub.ID.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Subscription == nil || updated.Subscription.Name != "Spotify" {
		t.Fatalf("expected newly referenced subscription embedded, got %+v", updated.Subscription)
	}
}

func TestListDependencyFailures(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{listErr: errors.New("down")}, &stubDirectory{}, fixedNow())
	if _, err := svc.List(context.Background()); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error, got %v", err)
	}

	svc = newTestService(t, &stubUserRepo{}, &stubDirectory{listErr: errors.New("down")}, fixedNow())
	_, err := svc.List(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
