package repository

import (
	"context"
	"strings"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	DefaultAgrovetTake = 20
	MaxAgrovetTake     = 100
	MaxEventList       = 50
	MaxEducationList   = 50
)

// ListingRepository serves the read-mostly reference listings.
type ListingRepository struct {
	DB *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{DB: db}
}

// Agrovets orders by rating. The category match runs in Go because the
// categories column is a JSON array and the store may be sqlite or postgres.
func (r *ListingRepository) Agrovets(ctx context.Context, f AgrovetFilter) ([]entity.Agrovet, error) {
	take := f.Take
	if take <= 0 {
		take = DefaultAgrovetTake
	}
	take = min(take, MaxAgrovetTake)

	q := r.DB.WithContext(ctx).Model(&entity.Agrovet{})
	if f.Region != "" {
		q = whereContains(q, "region", f.Region)
	}
	q = q.Order("rating DESC").Order("id ASC")
	if f.Category == "" {
		q = q.Limit(take)
	}

	var rows []entity.Agrovet
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	if f.Category == "" {
		return rows, nil
	}

	want := strings.ToLower(f.Category)
	matched := lo.Filter(rows, func(a entity.Agrovet, _ int) bool {
		return lo.ContainsBy(a.Categories, func(c string) bool { return strings.ToLower(c) == want })
	})
	if len(matched) > take {
		matched = matched[:take]
	}
	return matched, nil
}

// Events lists upcoming events from now, or from now+AfterDays when positive.
func (r *ListingRepository) Events(ctx context.Context, f EventFilter, now time.Time) ([]entity.Event, error) {
	from := now
	if f.AfterDays > 0 {
		from = now.AddDate(0, 0, f.AfterDays)
	}

	q := r.DB.WithContext(ctx).Where("start_date >= ?", from)
	if f.Region != "" {
		q = whereContains(q, "region", f.Region)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var out []entity.Event
	err := q.Order("start_date ASC").Order("id ASC").Limit(MaxEventList).Find(&out).Error
	return out, err
}

func (r *ListingRepository) Education(ctx context.Context, f EducationFilter) ([]entity.EducationContent, error) {
	q := r.DB.WithContext(ctx).Model(&entity.EducationContent{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Premium != nil {
		q = q.Where("is_premium = ?", *f.Premium)
	}
	var out []entity.EducationContent
	err := q.Order("created_at DESC").Order("id DESC").Limit(MaxEducationList).Find(&out).Error
	return out, err
}
