package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type SubscriptionController struct {
	Subs *services.SubscriptionService
	Log  *zap.Logger
}

func NewSubscriptionController(subs *services.SubscriptionService, log *zap.Logger) *SubscriptionController {
	return &SubscriptionController{Subs: subs, Log: log}
}

// GET /subscription returns the row, or null when the user has none.
func (sc *SubscriptionController) Get(c *gin.Context) {
	sub, err := sc.Subs.Get(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, sc.Log, err)
		return
	}
	resp.OK(c, sub)
}

// POST /subscription {tier}
func (sc *SubscriptionController) SetTier(c *gin.Context) {
	var req services.SetTierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, sc.Log, services.ErrInvalidTier)
		return
	}
	sub, err := sc.Subs.SetTier(c.Request.Context(), utils.CurrentUserID(c), req.Tier)
	if err != nil {
		writeError(c, sc.Log, err)
		return
	}
	resp.OK(c, sub)
}

// GET /subscription/plans
func (sc *SubscriptionController) Plans(c *gin.Context) {
	resp.OK(c, sc.Subs.AvailablePlans())
}

// GET /subscription/payments
func (sc *SubscriptionController) Payments(c *gin.Context) {
	out, err := sc.Subs.Payments(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, sc.Log, err)
		return
	}
	resp.OK(c, out)
}
