package services

import (
	"context"
	"strings"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/shopspring/decimal"
)

const defaultPriceSource = "manual"

type MarketService struct {
	Repo *repository.MarketRepository
	Now  func() time.Time
}

func NewMarketService(repo *repository.MarketRepository) *MarketService {
	return &MarketService{Repo: repo, Now: time.Now}
}

type RecordPriceInput struct {
	Product string          `json:"product" binding:"required"`
	Market  string          `json:"market" binding:"required"`
	Region  string          `json:"region"`
	Price   decimal.Decimal `json:"price"`
	Unit    string          `json:"unit" binding:"required"`
	Source  string          `json:"source"`
}

func (s *MarketService) Prices(ctx context.Context, f repository.MarketFilter) ([]entity.MarketPrice, error) {
	if f.Days < 0 {
		return nil, Validation("days must not be negative")
	}
	return s.Repo.Prices(ctx, f, s.Now())
}

// Record stores a price quote stamped with the current time.
func (s *MarketService) Record(ctx context.Context, in RecordPriceInput) (*entity.MarketPrice, error) {
	p := entity.MarketPrice{
		Product: strings.TrimSpace(in.Product),
		Market:  strings.TrimSpace(in.Market),
		Region:  strings.TrimSpace(in.Region),
		Price:   in.Price,
		Unit:    strings.TrimSpace(in.Unit),
		Source:  strings.TrimSpace(in.Source),
		Date:    s.Now(),
	}
	switch {
	case p.Product == "":
		return nil, Validation("product is required")
	case p.Market == "":
		return nil, Validation("market is required")
	case p.Unit == "":
		return nil, Validation("unit is required")
	case !p.Price.IsPositive():
		return nil, Validation("price must be greater than zero")
	}
	if p.Source == "" {
		p.Source = defaultPriceSource
	}

	if err := s.Repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
