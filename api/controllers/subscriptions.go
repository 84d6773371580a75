package controllers

import (
	"net/http"

	"github.com/angelmondragon/subtrack/api/responses"
	"github.com/angelmondragon/subtrack/api/validators"
	"github.com/angelmondragon/subtrack/internal/subscriptions"
	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
	"github.com/angelmondragon/subtrack/pkg/logger"
)

type subscriptionCreateRequest struct {
	Name      string `json:"name" validate:"required"`
	Link      string `json:"link" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	CreatedAt string `json:"createdAt" validate:"required"`
	EndedAt   string `json:"endedAt" validate:"required"`
}

// SubscriptionList handles listing every subscription, unfiltered and
// unpaginated, in store-native order.
func SubscriptionList(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]subscriptionResponse, len(rows))
		for i := range rows {
			payload[i] = subscriptionResponseFromModel(&rows[i])
		}
		responses.WriteJSON(w, http.StatusOK, payload)
	}
}

// SubscriptionCreate handles creating a subscription credential set.
func SubscriptionCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		var payload subscriptionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), subscriptions.CreateInput{
			Name:      payload.Name,
			Link:      payload.Link,
			Email:     payload.Email,
			Password:  payload.Password,
			CreatedAt: payload.CreatedAt,
			EndedAt:   payload.EndedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, subscriptionResponseFromModel(created))
	}
}

type subscriptionResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Link      string  `json:"link"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Status    string  `json:"status"`
	BlockedAt *string `json:"blockedAt,omitempty"`
	EndedAt   string  `json:"endedAt"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func subscriptionResponseFromModel(m *subscriptions.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Link:      m.Link,
		Email:     m.Email,
		Password:  m.Password,
		Status:    string(m.Status),
		BlockedAt: m.BlockedAt,
		EndedAt:   m.EndedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
