package repository

import (
	"context"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
)

const (
	DefaultMarketDays = 7
	MaxMarketList     = 100
)

type MarketRepository struct {
	DB *gorm.DB
}

func NewMarketRepository(db *gorm.DB) *MarketRepository {
	return &MarketRepository{DB: db}
}

// Prices returns quotes recorded in the last f.Days days, latest first.
func (r *MarketRepository) Prices(ctx context.Context, f MarketFilter, now time.Time) ([]entity.MarketPrice, error) {
	days := f.Days
	if days <= 0 {
		days = DefaultMarketDays
	}

	q := r.DB.WithContext(ctx).Where("date >= ?", now.AddDate(0, 0, -days))
	if f.Product != "" {
		q = whereContains(q, "product", f.Product)
	}
	if f.Market != "" {
		q = whereContains(q, "market", f.Market)
	}

	var out []entity.MarketPrice
	err := q.Order("date DESC").Order("id DESC").Limit(MaxMarketList).Find(&out).Error
	return out, err
}

func (r *MarketRepository) Create(ctx context.Context, p *entity.MarketPrice) error {
	return r.DB.WithContext(ctx).Create(p).Error
}
