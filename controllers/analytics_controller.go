package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Log       *zap.Logger
}

func NewAnalyticsController(analytics *services.AnalyticsService, log *zap.Logger) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Log: log}
}

// GET /farmer/performance (FARMER)
func (ac *AnalyticsController) Performance(c *gin.Context) {
	out, err := ac.Analytics.Performance(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, ac.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /recommendations?limit=
func (ac *AnalyticsController) Recommendations(c *gin.Context) {
	limit := utils.QueryInt(c, "limit", services.DefaultRecommendations)
	out, err := ac.Analytics.Recommendations(c.Request.Context(), utils.CurrentUserID(c), utils.CurrentRole(c), limit)
	if err != nil {
		writeError(c, ac.Log, err)
		return
	}
	resp.OK(c, out)
}
