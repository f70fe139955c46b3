package services

import (
	"context"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/plans"
	"github.com/kellyworkos00-droid/fairm/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	DB    *gorm.DB
	Repo  *repository.SubscriptionRepository
	Plans *plans.Catalog
	Log   *zap.Logger

	Now func() time.Time
}

func NewSubscriptionService(db *gorm.DB, repo *repository.SubscriptionRepository, catalog *plans.Catalog, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{DB: db, Repo: repo, Plans: catalog, Log: log, Now: time.Now}
}

type SetTierInput struct {
	Tier entity.Tier `json:"tier" binding:"required"`
}

// Get returns nil without error when the user has no subscription.
func (s *SubscriptionService) Get(ctx context.Context, userID uint) (*entity.Subscription, error) {
	return s.Repo.FindByUserID(ctx, userID)
}

// Provision gives a new account the FREE plan. It runs inside the caller's tx.
func (s *SubscriptionService) Provision(tx *gorm.DB, userID uint) (*entity.Subscription, error) {
	plan := s.Plans.Resolve(entity.TierFree)
	sub := entity.Subscription{
		UserID:       userID,
		Tier:         plan.Tier,
		Status:       entity.SubscriptionActive,
		MonthlyPrice: plan.Price,
		Currency:     plan.Currency,
	}
	if err := s.Repo.Create(tx, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetTier moves the user onto tier for one calendar month from now. Paid
// tiers leave a pending payment row behind for the billing side to settle.
func (s *SubscriptionService) SetTier(ctx context.Context, userID uint, tier entity.Tier) (*entity.Subscription, error) {
	plan, ok := s.Plans.Lookup(tier)
	if !ok {
		return nil, ErrInvalidTier
	}
	periodEnd := s.Now().AddDate(0, 1, 0)

	var out *entity.Subscription
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.UpdateByUserID(tx, userID, map[string]any{
			"tier":               plan.Tier,
			"status":             entity.SubscriptionActive,
			"monthly_price":      plan.Price,
			"currency":           plan.Currency,
			"current_period_end": periodEnd,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrSubscriptionNotFound
		}

		sub, err := s.Repo.FindByUserIDTx(tx, userID)
		if err != nil {
			return err
		}
		if sub == nil {
			return ErrSubscriptionNotFound
		}

		if plan.Price.IsPositive() {
			if err := s.Repo.CreatePayment(tx, &entity.Payment{
				SubscriptionID: sub.ID,
				Amount:         plan.Price,
				Currency:       plan.Currency,
				Method:         entity.PaymentMethodPending,
				Status:         entity.PaymentPending,
			}); err != nil {
				return err
			}
		}
		out = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("subscription tier set", zap.Uint("user_id", userID), zap.String("tier", string(plan.Tier)))
	return out, nil
}

func (s *SubscriptionService) Payments(ctx context.Context, userID uint) ([]entity.Payment, error) {
	return s.Repo.ListPayments(ctx, userID)
}

// AvailablePlans lists the catalog in tier order.
func (s *SubscriptionService) AvailablePlans() []plans.Plan {
	return s.Plans.All()
}
