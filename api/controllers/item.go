package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/plu-backend/api/responses"
	"github.com/angelmondragon/plu-backend/api/validators"
	"github.com/angelmondragon/plu-backend/internal/plu"
	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/metrics"
)

// ItemLookup handles GET /item?code=... and returns the item with its bulk and promotion prices.
func ItemLookup(svc plu.Service, logg *logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plu service unavailable"))
			return
		}

		query, err := validators.ParseLookupQuery(r)
		if err != nil {
			m.IncLookup(metrics.SurfaceREST, outcome(err))
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithLookup(ctx, query.Code)
		}

		result, err := svc.Lookup(ctx, query.Code)
		if err != nil {
			m.IncLookup(metrics.SurfaceREST, outcome(err))
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncLookup(metrics.SurfaceREST, outcome(nil))
		responses.WriteSuccess(w, result)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(string(pkgerrors.Normalize(err).Code()))
}
