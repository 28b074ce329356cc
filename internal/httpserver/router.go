package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"customer-directory/internal/domain"
	customersvc "customer-directory/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type customerService interface {
	CreateCustomer(ctx context.Context, in customersvc.CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in customersvc.UpdateCustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	AddAddress(ctx context.Context, customerID string, in customersvc.AddressInput) (*domain.Address, error)
	ListAddresses(ctx context.Context, customerID string, q customersvc.PageQuery) (domain.Page[domain.Address], error)
	GetAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error)
	UpdateAddress(ctx context.Context, customerID, addressID string, in customersvc.AddressInput) (*domain.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID string) error

	AddPaymentMethod(ctx context.Context, customerID string, in customersvc.PaymentMethodInput) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, customerID string, q customersvc.PageQuery) (domain.Page[domain.PaymentMethod], error)
	GetPaymentMethod(ctx context.Context, customerID, paymentMethodID string) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, customerID, paymentMethodID string, in customersvc.PaymentMethodInput) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, customerID, paymentMethodID string) error

	Health(ctx context.Context) (domain.Stats, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	CustomerSvc customerService
	// CORSAllowOrigins lists allowed browser origins; "*" allows any.
	CORSAllowOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if deps.CustomerSvc == nil {
		return nil, errors.New("customer service is required")
	}
	corsCfg, err := corsConfig(deps.CORSAllowOrigins)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger), cors.New(corsCfg))

	router.GET("/", healthHandler(deps.CustomerSvc, logger))
	router.GET("/healthz", livenessHandler)

	h := &handlers{svc: deps.CustomerSvc, logger: logger}

	customers := router.Group("/customers")
	customers.POST("", h.createCustomer)
	customers.GET("/:customerId", h.getCustomer)
	customers.PUT("/:customerId", h.updateCustomer)
	customers.DELETE("/:customerId", h.deleteCustomer)

	customers.POST("/:customerId/addresses", h.addAddress)
	customers.GET("/:customerId/addresses", h.listAddresses)
	customers.GET("/:customerId/addresses/:addressId", h.getAddress)
	customers.PUT("/:customerId/addresses/:addressId", h.updateAddress)
	customers.DELETE("/:customerId/addresses/:addressId", h.deleteAddress)

	customers.POST("/:customerId/paymentMethods", h.addPaymentMethod)
	customers.GET("/:customerId/paymentMethods", h.listPaymentMethods)
	customers.GET("/:customerId/paymentMethods/:paymentMethodId", h.getPaymentMethod)
	customers.PUT("/:customerId/paymentMethods/:paymentMethodId", h.updatePaymentMethod)
	customers.DELETE("/:customerId/paymentMethods/:paymentMethodId", h.deletePaymentMethod)

	return router, nil
}

func corsConfig(origins []string) (cors.Config, error) {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			break
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}
	if !cfg.AllowAllOrigins && len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	if err := cfg.Validate(); err != nil {
		return cors.Config{}, fmt.Errorf("cors config: %w", err)
	}
	return cfg, nil
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

func recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
	})
}
