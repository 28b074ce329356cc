package httpserver

import (
	"net/http"

	customersvc "customer-directory/internal/service/customer"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type handlers struct {
	svc    customerService
	logger zerolog.Logger
}

type listResponse[T any] struct {
	Data          []T    `json:"data"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

func (h *handlers) createCustomer(c *gin.Context) {
	var in customersvc.CreateCustomerInput
	if _, err := decodeJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	created, err := h.svc.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *handlers) updateCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("customerId")
	if _, err := h.svc.GetCustomer(ctx, id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	var in customersvc.UpdateCustomerInput
	if err := decodeUpdate(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	updated, err := h.svc.UpdateCustomer(ctx, id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("customerId")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
