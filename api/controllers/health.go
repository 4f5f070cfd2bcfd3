package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/plu-backend/api/responses"
	"github.com/angelmondragon/plu-backend/pkg/config"
	"github.com/angelmondragon/plu-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PLU-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and reports 503 when it is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PLU-Env", cfg.App.Env)
		if dbP != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping failed").
					WithDetails(map[string]any{"step": "health.ready"}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
