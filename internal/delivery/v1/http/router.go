package http

import (
	_ "github.com/DRSN-tech/inventory-backend/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
	cfg    *cfg.HTTPConfig
}

func NewRouter(router *chi.Mux, logger logger.Logger, cfg *cfg.HTTPConfig) *Router {
	return &Router{router: router, logger: logger, cfg: cfg}
}

// Init регистрирует middleware и маршруты. Метрики пишутся в reg и отдаются на /metrics.
func (r *Router) Init(prUC usecase.ProductUC, catUC usecase.CategoryUC, reg *prometheus.Registry) {
	metrics := NewMetrics(reg)

	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	r.router.Use(metrics.Middleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.cfg.SwaggerURL),
	))
	r.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger, r.cfg.MaxRequestSize)
		registerProductRoutes(v1, prHandler)

		catHandler := NewCategoryHandler(catUC, r.logger)
		registerCategoryRoutes(v1, catHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/", prHandler.getAllProducts)
		pr.Get("/search", prHandler.searchProducts)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Put("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler) {
	router.Route("/categories", func(cr chi.Router) {
		cr.Post("/", catHandler.createCategory)
		cr.Get("/", catHandler.getAllCategories)
		cr.Get("/{id}", catHandler.getCategory)
		cr.Put("/{id}", catHandler.updateCategory)
		cr.Delete("/{id}", catHandler.archiveCategory)
	})
}
