package repository

import (
	"context"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(tx *gorm.DB, n *entity.Notification) error {
	return tx.Create(n).Error
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]entity.Notification, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var out []entity.Notification
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// MarkRead flips the flag on one of the user's notifications; false if none matched.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected == 1, res.Error
}
