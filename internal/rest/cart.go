package rest

import (
	"net/http"

	"littlelemon-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type cartLineRequest struct {
	MenuItemID uint `json:"menuitem"`
	Quantity   int  `json:"quantity"`
}

type cartResponse struct {
	Lines []*cart.CartLine `json:"lines"`
	Total string           `json:"total"`
}

func (h *Handler) ListCart(c *gin.Context) {
	lines, err := h.carts.ListLines(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if lines == nil {
		lines = []*cart.CartLine{}
	}
	c.JSON(http.StatusOK, cartResponse{Lines: lines, Total: cart.Total(lines).StringFixed(2)})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req cartLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.carts.AddLine(c.Request.Context(), caller(c), req.MenuItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	menuItemID, ok := pathID(c, "menuItemId")
	if !ok {
		return
	}

	if err := h.carts.RemoveLine(c.Request.Context(), caller(c), menuItemID); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, "Item removed from the cart.")
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), caller(c)); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, "Cart cleared.")
}
