package services

import (
	"context"
	"strings"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/repository"
)

// ListingService serves the read-only directories: agrovets, events and
// educational content.
type ListingService struct {
	Repo *repository.ListingRepository
	Now  func() time.Time
}

func NewListingService(repo *repository.ListingRepository) *ListingService {
	return &ListingService{Repo: repo, Now: time.Now}
}

func (s *ListingService) Agrovets(ctx context.Context, f repository.AgrovetFilter) ([]entity.Agrovet, error) {
	f.Region = strings.TrimSpace(f.Region)
	f.Category = strings.TrimSpace(f.Category)
	if f.Take < 0 {
		return nil, Validation("take must not be negative")
	}
	return s.Repo.Agrovets(ctx, f)
}

// Events lists upcoming events, soonest first.
func (s *ListingService) Events(ctx context.Context, f repository.EventFilter) ([]entity.Event, error) {
	f.Region = strings.TrimSpace(f.Region)
	if f.AfterDays < 0 {
		return nil, Validation("afterDays must not be negative")
	}
	return s.Repo.Events(ctx, f, s.Now())
}

func (s *ListingService) Education(ctx context.Context, f repository.EducationFilter) ([]entity.EducationContent, error) {
	f.Category = strings.TrimSpace(f.Category)
	return s.Repo.Education(ctx, f)
}
