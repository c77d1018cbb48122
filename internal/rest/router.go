// Package rest is the HTTP surface: gin routes that decode requests, hand
// the resolved caller to the domain services and encode the outcome.
package rest

import (
	"net/http"

	"littlelemon-be/internal/cart"
	"littlelemon-be/internal/category"
	"littlelemon-be/internal/membership"
	"littlelemon-be/internal/menu"
	"littlelemon-be/internal/metrics"
	"littlelemon-be/internal/order"
	"littlelemon-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Menu       menu.Service
	Category   category.Service
	Membership membership.Service
	Cart       cart.Service
	Order      order.Service
	User       user.Service
	Metrics    *metrics.Registry
}

type Handler struct {
	menus      menu.Service
	categories category.Service
	members    membership.Service
	carts      cart.Service
	orders     order.Service
	users      user.Service
	metrics    *metrics.Registry

	// secureCookie marks the login cookie Secure outside development.
	secureCookie bool
}

func NewHandler(s Services, secureCookie bool) *Handler {
	reg := s.Metrics
	if reg == nil {
		reg = metrics.Default
	}
	return &Handler{
		menus:        s.Menu,
		categories:   s.Category,
		members:      s.Membership,
		carts:        s.Cart,
		orders:       s.Order,
		users:        s.User,
		metrics:      reg,
		secureCookie: secureCookie,
	}
}

// NewRouter registers every route. Authentication and throttling are
// http.Handler middleware wrapped around the engine by the caller.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.Health)

	r.POST("/users", h.Register)
	r.GET("/users/me", h.Me)
	r.POST("/token/login", h.Login)

	r.GET("/categories", h.ListCategories)
	r.POST("/categories", h.CreateCategory)

	r.GET("/menu-items", h.ListMenuItems)
	r.POST("/menu-items", h.CreateMenuItem)
	r.GET("/menu-items/:id", h.GetMenuItem)
	r.PUT("/menu-items/:id", h.ReplaceMenuItem)
	r.PATCH("/menu-items/:id", h.PatchMenuItem)
	r.DELETE("/menu-items/:id", h.DeleteMenuItem)

	groups := r.Group("/groups/:group/users")
	{
		groups.GET("", h.ListGroupMembers)
		groups.POST("", h.AddGroupMember)
		groups.DELETE("/:userId", h.RemoveGroupMember)
	}

	r.GET("/cart/menu-items", h.ListCart)
	r.POST("/cart/menu-items", h.AddToCart)
	r.DELETE("/cart/menu-items", h.ClearCart)
	r.DELETE("/cart/menu-items/:menuItemId", h.RemoveFromCart)

	r.GET("/orders", h.ListOrders)
	r.POST("/orders", h.PlaceOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id", h.UpdateOrder)
	r.PATCH("/orders/:id", h.UpdateOrder)
	r.DELETE("/orders/:id", h.DeleteOrder)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"metrics": h.metrics.Snapshot(),
	})
}
