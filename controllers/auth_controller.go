package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type AuthController struct {
	Auth *services.AuthService
	Log  *zap.Logger
}

func NewAuthController(auth *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Log: log}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Auth.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, a.Log, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Auth.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, a.Log, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.Me(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, a.Log, err)
		return
	}
	resp.OK(c, user)
}
