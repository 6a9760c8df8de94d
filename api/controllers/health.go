package controllers

import (
	"net/http"

	"github.com/nishantzaveri/jewelbooks-backend/api/responses"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JewelBooks-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis. Any failing dependency flips the
// endpoint to 502 so the platform stops routing traffic here.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JewelBooks-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = err.Error()
				healthy = false
			} else {
				checks["db"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency check failed").
				WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
