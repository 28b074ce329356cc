package httpserver

import (
	"net/http"

	customersvc "customer-directory/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func (h *handlers) addPaymentMethod(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := c.Param("customerId")
	if _, err := h.svc.GetCustomer(ctx, customerID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	var in customersvc.PaymentMethodInput
	if _, err := decodeJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	created, err := h.svc.AddPaymentMethod(ctx, customerID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) listPaymentMethods(c *gin.Context) {
	page, err := h.svc.ListPaymentMethods(c.Request.Context(), c.Param("customerId"), pageQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(page))
}

func (h *handlers) getPaymentMethod(c *gin.Context) {
	pm, err := h.svc.GetPaymentMethod(c.Request.Context(), c.Param("customerId"), c.Param("paymentMethodId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pm)
}

func (h *handlers) updatePaymentMethod(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, pmID := c.Param("customerId"), c.Param("paymentMethodId")
	if _, err := h.svc.GetPaymentMethod(ctx, customerID, pmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	var in customersvc.PaymentMethodInput
	if err := decodeUpdate(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	updated, err := h.svc.UpdatePaymentMethod(ctx, customerID, pmID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deletePaymentMethod(c *gin.Context) {
	if err := h.svc.DeletePaymentMethod(c.Request.Context(), c.Param("customerId"), c.Param("paymentMethodId")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
