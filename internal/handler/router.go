package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhouzirui/food-catalog/backend/internal/config"
	"github.com/zhouzirui/food-catalog/backend/internal/handler/food"
	middlewarePkg "github.com/zhouzirui/food-catalog/backend/internal/middleware"
	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
	"github.com/zhouzirui/food-catalog/backend/pkg/utils"
)

const requestTimeout = 30 * time.Second

// NewRouter wires HTTP routes to the catalog service.
func NewRouter(catalogSvc *catalog.Service, logger *zap.Logger, cfg *config.Config) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middlewarePkg.Logger(logger.Named("http")))
	r.Use(chimw.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.CORS.Origins))
	if cfg.Observability.MetricsEnabled {
		r.Use(middlewarePkg.Metrics)
	}
	r.Use(chimw.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	foodHandler := food.New(catalogSvc, logger, food.Limits{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	})

	registerAPI := func(api chi.Router) {
		api.Get("/health", handleHealth)
		foodHandler.RegisterRoutes(api)
	}
	if cfg.Catalog.APIPrefix == "" {
		registerAPI(r)
	} else {
		r.Route(cfg.Catalog.APIPrefix, registerAPI)
	}

	if cfg.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
