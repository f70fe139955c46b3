package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success bodies are the bare value; errors are {"error": msg[, "kind": k]}.

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, status int, msg, kind string) {
	body := gin.H{"error": msg}
	if kind != "" {
		body["kind"] = kind
	}
	c.AbortWithStatusJSON(status, body)
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg, "validation")
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg, "unauthorized")
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg, "forbidden")
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg, "not_found")
}

func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests", "")
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", "internal")
}
