package httpserver

import (
	"net/http"

	"customer-directory/internal/domain"
	customersvc "customer-directory/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func pageQuery(c *gin.Context) customersvc.PageQuery {
	return customersvc.PageQuery{
		Size:  c.Query("pageSize"),
		Token: c.Query("pageToken"),
	}
}

func toListResponse[T any](page domain.Page[T]) listResponse[T] {
	resp := listResponse[T]{Data: page.Items}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	if page.Next != nil {
		resp.NextPageToken = page.Next.String()
	}
	return resp
}

func (h *handlers) addAddress(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := c.Param("customerId")
	if _, err := h.svc.GetCustomer(ctx, customerID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	var in customersvc.AddressInput
	if _, err := decodeJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	created, err := h.svc.AddAddress(ctx, customerID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) listAddresses(c *gin.Context) {
	page, err := h.svc.ListAddresses(c.Request.Context(), c.Param("customerId"), pageQuery(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(page))
}

func (h *handlers) getAddress(c *gin.Context) {
	addr, err := h.svc.GetAddress(c.Request.Context(), c.Param("customerId"), c.Param("addressId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (h *handlers) updateAddress(c *gin.Context) {
	ctx := c.Request.Context()
	customerID, addressID := c.Param("customerId"), c.Param("addressId")
	if _, err := h.svc.GetAddress(ctx, customerID, addressID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	var in customersvc.AddressInput
	if err := decodeUpdate(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	updated, err := h.svc.UpdateAddress(ctx, customerID, addressID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	if err := h.svc.DeleteAddress(c.Request.Context(), c.Param("customerId"), c.Param("addressId")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
