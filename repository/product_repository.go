package repository

import (
	"context"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxProductList bounds every public product listing.
const MaxProductList = 50

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func farmerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "location", "phone")
}

// List returns available products matching f, newest first.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Product{}).Where("available = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = whereContains(q, "name", f.Search)
	}
	if f.Location != "" {
		q = whereContains(q, "location", f.Location)
	}

	var out []entity.Product
	err := q.Preload("Farmer", farmerSummary).
		Order("created_at DESC").Order("id DESC").
		Limit(MaxProductList).
		Find(&out).Error
	return out, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.WithContext(ctx).Preload("Farmer", farmerSummary).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindForUpdate re-reads a product inside tx with a row lock.
func (r *ProductRepository) FindForUpdate(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountLive counts the farmer's listings that still count toward the tier limit.
func (r *ProductRepository) CountLive(tx *gorm.DB, farmerID uint) (int64, error) {
	var n int64
	err := tx.Model(&entity.Product{}).
		Where("farmer_id = ? AND available = ?", farmerID, true).
		Count(&n).Error
	return n, err
}

func (r *ProductRepository) Create(tx *gorm.DB, p *entity.Product) error {
	return tx.Create(p).Error
}

// Update writes the given columns; a map is used so false/zero values stick.
func (r *ProductRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

// DecrementStock takes qty off the listing only if that much is left.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty float64) (bool, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND available = ? AND quantity >= ?", id, true, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Restock puts qty back on the listing, e.g. when an order is cancelled.
func (r *ProductRepository) Restock(tx *gorm.DB, id uint, qty float64) error {
	return tx.Model(&entity.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// ListByFarmer returns all of a farmer's listings, delisted ones included.
func (r *ProductRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.DB.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}

// ListAvailable returns the newest available products, optionally in one category.
func (r *ProductRepository) ListAvailable(ctx context.Context, category entity.ProductCategory, limit int) ([]entity.Product, error) {
	q := r.DB.WithContext(ctx).Where("available = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []entity.Product
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ListAvailableByIDs returns the available products among ids, in no particular order.
func (r *ProductRepository) ListAvailableByIDs(ctx context.Context, ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var out []entity.Product
	err := r.DB.WithContext(ctx).
		Where("id IN ? AND available = ?", ids, true).
		Find(&out).Error
	return out, err
}
