package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"go.uber.org/zap"
)

var kindStatus = map[services.Kind]int{
	services.KindUnauthorized:      http.StatusUnauthorized,
	services.KindForbidden:         http.StatusForbidden,
	services.KindValidation:        http.StatusBadRequest,
	services.KindNotFound:          http.StatusNotFound,
	services.KindLimitExceeded:     http.StatusForbidden,
	services.KindInsufficientStock: http.StatusConflict,
	services.KindConflict:          http.StatusConflict,
}

// writeError maps a service error onto the response. Anything that is not
// a domain error is logged and reported as a generic 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	kind := services.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		resp.ServerError(c)
		return
	}
	resp.Error(c, status, err.Error(), string(kind))
}
