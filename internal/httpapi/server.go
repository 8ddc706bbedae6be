// Package httpapi exposes the catalog graph over the edge API the product
// page widget consumes. Handlers are thin: locale negotiation, the service
// call, and error mapping.
package httpapi

import (
	"net/http"
	"time"

	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wires the edge API routes over a CatalogService.
type Server struct {
	engine  *gin.Engine
	catalog service.CatalogService
	cal     *domain.Calendar
	logger  *zap.Logger
}

// NewServer builds the gin engine with logging, request IDs and CORS.
func NewServer(catalog service.CatalogService, cal *domain.Calendar, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS())

	s := &Server{engine: engine, catalog: catalog, cal: cal, logger: logger}

	engine.GET("/healthz", s.health)
	api := engine.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.productDetail)
		api.GET("/products/:id/delivery", s.deliveryReport)
	}
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	s.logger.Info("edge api listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
