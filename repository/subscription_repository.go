package repository

import (
	"context"
	"errors"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// FindByUserID returns nil, nil when the user has no subscription row.
func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Subscription, error) {
	return r.findByUserID(r.DB.WithContext(ctx), userID)
}

func (r *SubscriptionRepository) FindByUserIDTx(tx *gorm.DB, userID uint) (*entity.Subscription, error) {
	return r.findByUserID(tx, userID)
}

func (r *SubscriptionRepository) findByUserID(db *gorm.DB, userID uint) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// TierOf is the seller tier used for limits and commission; "" when absent.
func (r *SubscriptionRepository) TierOf(tx *gorm.DB, userID uint) (entity.Tier, error) {
	sub, err := r.findByUserID(tx, userID)
	if err != nil || sub == nil {
		return "", err
	}
	return sub.Tier, nil
}

func (r *SubscriptionRepository) Create(tx *gorm.DB, sub *entity.Subscription) error {
	return tx.Create(sub).Error
}

// UpdateByUserID updates in place by the unique user key; it never inserts.
func (r *SubscriptionRepository) UpdateByUserID(tx *gorm.DB, userID uint, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Subscription{}).Where("user_id = ?", userID).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *SubscriptionRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *SubscriptionRepository) ListPayments(ctx context.Context, userID uint) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.WithContext(ctx).
		Joins("JOIN subscriptions s ON s.id = payments.subscription_id").
		Where("s.user_id = ?", userID).
		Order("payments.created_at DESC").Order("payments.id DESC").
		Find(&out).Error
	return out, err
}
