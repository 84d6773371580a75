package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/subtrack/api/responses"
	"github.com/angelmondragon/subtrack/api/validators"
	"github.com/angelmondragon/subtrack/internal/users"
	pkgerrors "github.com/angelmondragon/subtrack/pkg/errors"
	"github.com/angelmondragon/subtrack/pkg/logger"
)

type userCreateRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Phone          string `json:"phone"`
	SubscriptionID string `json:"suscriptionId" validate:"required"`
	EndedAt        string `json:"endedAt" validate:"required"`
}

type userUpdateRequest struct {
	SubscriptionID string `json:"suscriptionId"`
	EndedAt        string `json:"endedAt"`
}

// UserList handles listing every user with its resolved subscription
// embedded (or null for absent and dangling references).
func UserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]userResponse, len(rows))
		for i := range rows {
			payload[i] = userResponseFromModel(&rows[i])
		}
		responses.WriteJSON(w, http.StatusOK, payload)
	}
}

// UserCreate handles creating a user assigned to a subscription.
func UserCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var payload userCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), users.CreateInput{
			Name:           payload.Name,
			Email:          payload.Email,
			Phone:          payload.Phone,
			SubscriptionID: payload.SubscriptionID,
			EndedAt:        payload.EndedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, userResponseFromModel(created))
	}
}

// UserUpdate handles the partial update of a user's subscription reference
// and expiry date.
func UserUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "user id is required"))
			return
		}

		var payload userUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, users.UpdateInput{
			SubscriptionID: payload.SubscriptionID,
			EndedAt:        payload.EndedAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, userResponseFromModel(updated))
	}
}

type userResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	Subscription *subscriptionResponse `json:"suscription"`
	Phone        *string               `json:"phone"`
	Name         string                `json:"name"`
	Status       string                `json:"status"`
	CreatedAt    string                `json:"createdAt"`
	UpdatedAt    string                `json:"updatedAt"`
	EndedAt      string                `json:"endedAt"`
}

func userResponseFromModel(m *users.WithSubscription) userResponse {
	resp := userResponse{
		ID:        m.ID.Hex(),
		Email:     m.Email,
		Phone:     m.Phone,
		Name:      m.Name,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		EndedAt:   m.EndedAt,
	}
	if m.Subscription != nil {
		sub := subscriptionResponseFromModel(m.Subscription)
		resp.Subscription = &sub
	}
	return resp
}
