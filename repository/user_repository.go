package repository

import (
	"context"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository talks to the users table only.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(tx *gorm.DB, user *entity.User) error {
	return tx.Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Preload("Subscription").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LockForUpdate takes a row lock on the user so per-user check-then-write
// sequences serialise. sqlite ignores the clause and serialises writers anyway.
func (r *UserRepository) LockForUpdate(tx *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id, role").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
