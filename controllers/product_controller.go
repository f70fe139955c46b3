package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

type ProductController struct {
	Products *services.ProductService
	Log      *zap.Logger
}

func NewProductController(products *services.ProductService, log *zap.Logger) *ProductController {
	return &ProductController{Products: products, Log: log}
}

// GET /products?category=&search=&location=
func (pc *ProductController) List(c *gin.Context) {
	f := repository.ProductFilter{
		Category: entity.ProductCategory(c.Query("category")),
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}
	out, err := pc.Products.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /products/:id
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	p, err := pc.Products.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.OK(c, p)
}

// POST /products (FARMER)
func (pc *ProductController) Create(c *gin.Context) {
	var req services.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Products.Create(c.Request.Context(), utils.CurrentUserID(c), req)
	if err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /products/:id (FARMER, owner)
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req services.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := pc.Products.Update(c.Request.Context(), utils.CurrentUserID(c), id, req)
	if err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /products/:id (FARMER, owner)
func (pc *ProductController) Remove(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	if err := pc.Products.Remove(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// GET /farmer/products (FARMER)
func (pc *ProductController) Mine(c *gin.Context) {
	out, err := pc.Products.ListMine(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, pc.Log, err)
		return
	}
	resp.OK(c, out)
}
