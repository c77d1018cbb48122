package rest

import (
	"fmt"
	"net/http"

	"littlelemon-be/internal/membership"
	"littlelemon-be/internal/role"

	"github.com/gin-gonic/gin"
)

type memberRequest struct {
	Username string `json:"username"`
}

// groupRole maps the :group segment onto a role. Customer is not a group.
func groupRole(c *gin.Context) (role.Role, bool) {
	r, ok := role.Parse(c.Param("group"))
	if !ok || r == role.Customer {
		respondError(c, membership.ErrUnknownGroup)
		return 0, false
	}
	return r, true
}

func (h *Handler) ListGroupMembers(c *gin.Context) {
	r, ok := groupRole(c)
	if !ok {
		return
	}

	users, err := h.members.ListMembers(c.Request.Context(), caller(c), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) AddGroupMember(c *gin.Context) {
	r, ok := groupRole(c)
	if !ok {
		return
	}
	var req memberRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.members.AddToRole(c.Request.Context(), caller(c), r, req.Username); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusCreated, fmt.Sprintf("User added to %s group.", r))
}

func (h *Handler) RemoveGroupMember(c *gin.Context) {
	r, ok := groupRole(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if _, err := h.members.RemoveFromRole(c.Request.Context(), caller(c), r, userID); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("User removed from %s group.", r))
}
