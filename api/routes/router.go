package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/plu-backend/api/controllers"
	"github.com/angelmondragon/plu-backend/api/graphql"
	"github.com/angelmondragon/plu-backend/api/middleware"
	"github.com/angelmondragon/plu-backend/internal/plu"
	"github.com/angelmondragon/plu-backend/pkg/config"
	"github.com/angelmondragon/plu-backend/pkg/db"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/metrics"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

// Database is what the router needs from the data layer: a readiness ping and per-request sessions.
type Database interface {
	db.Pinger
	middleware.SessionProvider
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database Database,
	pluService plu.Service,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) (http.Handler, error) {
	schema, err := graphql.NewSchema(pluService, graphql.Globals{
		AppTitle:    cfg.App.Title,
		AppSubtitle: cfg.App.Subtitle,
		Version:     version.Version(),
	}, logg, m)
	if err != nil {
		return nil, fmt.Errorf("building graphql schema: %w", err)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(m),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Get("/", controllers.Index(cfg.HTTP.StaticDir))
	r.Get("/info", controllers.Info())
	r.Handle(cfg.HTTP.StaticPrefix+"/*", controllers.Static(cfg.HTTP.StaticDir))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	if cfg.App.IsDev() {
		r.Get("/openapi.json", controllers.OpenAPI(cfg.App.Title))
	}

	r.Group(func(r chi.Router) {
		if database != nil {
			r.Use(middleware.Session(database, logg))
		}
		r.Get("/item", controllers.ItemLookup(pluService, logg, m))
		r.Handle(cfg.HTTP.GraphQLPath, graphql.NewHandler(schema, cfg.App.IsDev()))
	})

	return r, nil
}
