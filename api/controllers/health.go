package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gamevault/storefront-backend/api/responses"
	"github.com/gamevault/storefront-backend/pkg/config"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GameVault-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the session storage before reporting ready.
func HealthReady(cfg *config.Config, storage Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GameVault-Env", cfg.App.Env)
		if storage == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "storage not configured"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := storage.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
