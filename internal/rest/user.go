package rest

import (
	"net/http"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/auth"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login answers with the token and also sets it as an HttpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, _, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, 0, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

func (h *Handler) Me(c *gin.Context) {
	cl := caller(c)
	if !cl.Authenticated {
		respondError(c, apperr.ErrUnauthenticated)
		return
	}

	u, err := h.users.GetUser(c.Request.Context(), cl.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
