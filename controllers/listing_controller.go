package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/kellyworkos00-droid/fairm/services"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

// ListingController serves the public directories and market prices.
type ListingController struct {
	Listings *services.ListingService
	Market   *services.MarketService
	Log      *zap.Logger
}

func NewListingController(listings *services.ListingService, market *services.MarketService, log *zap.Logger) *ListingController {
	return &ListingController{Listings: listings, Market: market, Log: log}
}

// GET /agrovets?region=&category=&take=
func (lc *ListingController) Agrovets(c *gin.Context) {
	out, err := lc.Listings.Agrovets(c.Request.Context(), repository.AgrovetFilter{
		Region:   c.Query("region"),
		Category: c.Query("category"),
		Take:     utils.QueryInt(c, "take", repository.DefaultAgrovetTake),
	})
	if err != nil {
		writeError(c, lc.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /events?region=&category=&afterDays=
func (lc *ListingController) Events(c *gin.Context) {
	out, err := lc.Listings.Events(c.Request.Context(), repository.EventFilter{
		Region:    c.Query("region"),
		Category:  c.Query("category"),
		AfterDays: utils.QueryInt(c, "afterDays", 0),
	})
	if err != nil {
		writeError(c, lc.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /education?category=&premium=
func (lc *ListingController) Education(c *gin.Context) {
	f := repository.EducationFilter{Category: c.Query("category")}
	if raw := c.Query("premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			resp.BadRequest(c, "premium must be true or false")
			return
		}
		f.Premium = &premium
	}
	out, err := lc.Listings.Education(c.Request.Context(), f)
	if err != nil {
		writeError(c, lc.Log, err)
		return
	}
	resp.OK(c, out)
}

// GET /market-data?product=&market=&days=
func (lc *ListingController) MarketPrices(c *gin.Context) {
	out, err := lc.Market.Prices(c.Request.Context(), repository.MarketFilter{
		Product: c.Query("product"),
		Market:  c.Query("market"),
		Days:    utils.QueryInt(c, "days", repository.DefaultMarketDays),
	})
	if err != nil {
		writeError(c, lc.Log, err)
		return
	}
	resp.OK(c, out)
}

// POST /market-data
func (lc *ListingController) RecordPrice(c *gin.Context) {
	var req services.RecordPriceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := lc.Market.Record(c.Request.Context(), req)
	if err != nil {
		writeError(c, lc.Log, err)
		return
	}
	resp.Created(c, p)
}
