package repository

import (
	"context"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Items", "Delivery", "Buyer", "Seller").Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Omit("Product").Create(oi).Error
}

func (r *OrderRepository) CreateDelivery(tx *gorm.DB, d *entity.Delivery) error {
	return tx.Create(d).Error
}

func contactSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "phone")
}

// withGraph preloads what every order response carries.
func withGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Preload("Buyer", contactSummary).
		Preload("Seller", contactSummary).
		Preload("Delivery")
}

// LoadGraph reads a full order through db, which may be a transaction.
func (r *OrderRepository) LoadGraph(db *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := withGraph(db).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListForBuyer / ListForSeller back GET /orders; newest first.
func (r *OrderRepository) ListForBuyer(ctx context.Context, buyerID uint) ([]entity.Order, error) {
	return r.listWhere(ctx, "buyer_id = ?", buyerID)
}

func (r *OrderRepository) ListForSeller(ctx context.Context, sellerID uint) ([]entity.Order, error) {
	return r.listWhere(ctx, "seller_id = ?", sellerID)
}

func (r *OrderRepository) listWhere(ctx context.Context, cond string, id uint) ([]entity.Order, error) {
	var out []entity.Order
	err := withGraph(r.DB.WithContext(ctx)).
		Where(cond, id).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}

// FindForParty returns the order only if userID bought or sold it.
func (r *OrderRepository) FindForParty(ctx context.Context, orderID, userID uint) (*entity.Order, error) {
	var o entity.Order
	err := withGraph(r.DB.WithContext(ctx)).
		Where("(buyer_id = ? OR seller_id = ?)", userID, userID).
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ---------------- Status ----------------

// FindSold locks nothing; the status change itself is guarded.
func (r *OrderRepository) FindSold(tx *gorm.DB, orderID, sellerID uint) (*entity.Order, error) {
	var o entity.Order
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("seller_id = ?", sellerID).
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatusGuard moves the order only if it is still in status from.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdateDeliveryStatus(tx *gorm.DB, orderID uint, status string) error {
	return tx.Model(&entity.Delivery{}).Where("order_id = ?", orderID).Update("status", status).Error
}

// ---------------- Analytics reads ----------------

// SellerHistory loads every order sold by sellerID with items and products,
// oldest first so aggregation sees orders in placement order.
func (r *OrderRepository) SellerHistory(ctx context.Context, sellerID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("seller_id = ?", sellerID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// RecentForBuyer loads the buyer's n latest orders with items and products.
func (r *OrderRepository) RecentForBuyer(ctx context.Context, buyerID uint, n int) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").Order("id DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}

type ProductPopularity struct {
	ProductID     uint    `json:"productId"`
	TotalQuantity float64 `json:"totalQuantity"`
}

// PopularProducts sums ordered quantity per product across all orders.
func (r *OrderRepository) PopularProducts(ctx context.Context, limit int) ([]ProductPopularity, error) {
	var out []ProductPopularity
	err := r.DB.WithContext(ctx).Model(&entity.OrderItem{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Group("product_id").
		Order("total_quantity DESC").Order("product_id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
