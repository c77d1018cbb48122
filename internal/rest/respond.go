package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/transport"
	"littlelemon-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidBody = apperr.BadRequest("request body is not valid JSON")
	errInvalidID   = apperr.BadRequest("id must be a positive integer")
	errInvalidPage = apperr.BadRequest("page and perpage must be positive integers")
)

func caller(c *gin.Context) role.Caller {
	return transport.CallerFrom(c.Request.Context())
}

// respondError writes the {"message": ...} envelope. Internal failures are
// logged here since their cause never reaches the client.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("layer", "rest"),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"message": apperr.PublicMessage(err)})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := utils.ToUint(c.Param(name))
	if err != nil || n == 0 {
		respondError(c, errInvalidID)
		return 0, false
	}
	return n, true
}

// pagination reads page and perpage; absent values stay zero so the
// repositories apply their defaults.
func pagination(c *gin.Context) (limit, page int, ok bool) {
	for _, p := range []struct {
		key string
		dst *int
	}{{"perpage", &limit}, {"page", &page}} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, errInvalidPage)
			return 0, 0, false
		}
		*p.dst = n
	}
	return limit, page, true
}

// bindJSON treats an empty body as an empty object; the services report
// which required field is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, errInvalidBody)
		return false
	}
	return true
}
