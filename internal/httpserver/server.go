package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// New builds a Server serving the directory API on addr.
func New(addr string, logger zerolog.Logger, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// NewHandler returns the API router without a listener, for embedding and tests.
func NewHandler(logger zerolog.Logger, deps Deps) (http.Handler, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}
	return router, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type healthResponse struct {
	Status                   string `json:"status"`
	Message                  string `json:"message"`
	CustomersCount           int    `json:"customers_count"`
	AddressesCountTotal      int    `json:"addresses_count_total"`
	PaymentMethodsCountTotal int    `json:"payment_methods_count_total"`
}

func livenessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func healthHandler(svc customerService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Health(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, healthResponse{
			Status:                   "healthy",
			Message:                  "Customer API stub is running.",
			CustomersCount:           stats.Customers,
			AddressesCountTotal:      stats.Addresses,
			PaymentMethodsCountTotal: stats.PaymentMethods,
		})
	}
}
