package rest

import (
	"net/http"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/menu"
	"littlelemon-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var errInvalidCategory = apperr.BadRequest("category must be a positive integer")

type menuItemRequest struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *uint            `json:"category_id"`
}

// input is the full form used by create and replace. Absent fields stay
// zero and fail validation in the service, after authorization.
func (r menuItemRequest) input() menu.MenuItemInput {
	var in menu.MenuItemInput
	if r.Title != nil {
		in.Title = *r.Title
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.Featured != nil {
		in.Featured = *r.Featured
	}
	if r.CategoryID != nil {
		in.CategoryID = *r.CategoryID
	}
	return in
}

func (r menuItemRequest) patch() menu.MenuItemPatch {
	return menu.MenuItemPatch{
		Title:      r.Title,
		Price:      r.Price,
		Featured:   r.Featured,
		CategoryID: r.CategoryID,
	}
}

func (h *Handler) ListMenuItems(c *gin.Context) {
	limit, page, ok := pagination(c)
	if !ok {
		return
	}

	params := menu.ListParams{
		Search:   c.Query("search"),
		Ordering: menu.Ordering(c.Query("ordering")),
		Limit:    limit,
		Page:     page,
	}
	if raw := c.Query("category"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil || id == 0 {
			respondError(c, errInvalidCategory)
			return
		}
		params.CategoryID = id
	}

	items, err := h.menus.ListMenuItems(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.menus.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menus.CreateMenuItem(c.Request.Context(), caller(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) ReplaceMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menus.ReplaceMenuItem(c.Request.Context(), caller(c), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) PatchMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menus.PatchMenuItem(c.Request.Context(), caller(c), id, req.patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.menus.DeleteMenuItem(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, "Menu item deleted.")
}

type categoryRequest struct {
	Title string `json:"title"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.categories.GetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	cat, err := h.categories.AddCategory(c.Request.Context(), caller(c), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
