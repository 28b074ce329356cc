package httpserver

import (
	"errors"
	"net/http"

	"customer-directory/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var internalError = &domain.Error{Code: domain.CodeInternal, Message: "Internal server error"}

func statusFor(code domain.Code) int {
	switch code {
	case domain.CodeCustomerNotFound, domain.CodeAddressNotFound, domain.CodePaymentMethodNotFound:
		return http.StatusNotFound
	case domain.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeError renders domain errors as-is and hides everything else behind INTERNAL_ERROR.
func writeError(c *gin.Context, logger zerolog.Logger, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		c.JSON(statusFor(derr.Code), derr)
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, internalError)
}
