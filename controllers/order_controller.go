package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type OrderController struct {
	Orders *services.OrderService
	Log    *zap.Logger
}

func NewOrderController(orders *services.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Log: log}
}

// POST /orders (BUYER)
func (oc *OrderController) Create(c *gin.Context) {
	var req services.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Orders.Place(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		writeError(c, oc.Log, err)
		return
	}
	resp.Created(c, o)
}

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	out, err := oc.Orders.List(c.Request.Context(), utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		writeError(c, oc.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := oc.Orders.Get(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, oc.Log, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /orders/:id/status (FARMER, seller only)
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req services.UpdateStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Orders.UpdateStatus(c.Request.Context(), utils.CurrentUserID(c), id, req.Status)
	if err != nil {
		writeError(c, oc.Log, err)
		return
	}
	resp.OK(c, o)
}
