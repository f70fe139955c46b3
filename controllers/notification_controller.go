package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type NotificationController struct {
	Notifications *services.NotificationService
	Log           *zap.Logger
}

func NewNotificationController(n *services.NotificationService, log *zap.Logger) *NotificationController {
	return &NotificationController{Notifications: n, Log: log}
}

// GET /notifications?unread=true
func (nc *NotificationController) List(c *gin.Context) {
	out, err := nc.Notifications.List(c.Request.Context(), utils.CurrentUserID(c), c.Query("unread") == "true")
	if err != nil {
		writeError(c, nc.Log, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid notification id")
		return
	}
	if err := nc.Notifications.MarkRead(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		writeError(c, nc.Log, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
