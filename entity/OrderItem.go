package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem keeps the unit price captured when the order was placed.
// Subtotal is exactly Quantity x PricePerUnit, never rounded.
type OrderItem struct {
	gorm.Model
	Quantity     float64         `gorm:"not null" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerUnit"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"subtotal"`

	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Product   *Product `json:"product,omitempty"`
}
