package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/subtrack/api/responses"
	"github.com/angelmondragon/subtrack/pkg/config"
	"github.com/angelmondragon/subtrack/pkg/logger"
	"github.com/angelmondragon/subtrack/pkg/mongo"
)

const readyPingTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Subtrack-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the document store answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, store mongo.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Subtrack-Env", cfg.App.Env)

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(ctx, "readiness ping failed", err)
				}
				responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
