package controllers

import (
	"net/http"

	"github.com/omarvaldez/shopstock-backend/api/responses"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/db"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopStock-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopStock-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
