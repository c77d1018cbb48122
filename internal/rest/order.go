package rest

import (
	"fmt"
	"net/http"

	"littlelemon-be/internal/order"

	"github.com/gin-gonic/gin"
)

type orderUpdateRequest struct {
	DeliveryCrew *uint `json:"delivery_crew"`
	Status       *bool `json:"status"`
}

func (h *Handler) ListOrders(c *gin.Context) {
	limit, page, ok := pagination(c)
	if !ok {
		return
	}

	params := order.ListParams{Limit: limit, Page: page}
	if raw := c.Query("status"); raw != "" {
		st, ok := order.ParseState(raw)
		if !ok {
			respondError(c, order.ErrInvalidState)
			return
		}
		params.State = &st
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), caller(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	o, err := h.orders.PlaceOrder(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// UpdateOrder serves both PUT and PATCH; the service picks the transition
// from the caller's role.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req orderUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.orders.UpdateOrder(c.Request.Context(), caller(c), id, order.Update{
		DeliveryCrewID: req.DeliveryCrew,
		Status:         req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("Order #%d was deleted.", id))
}
