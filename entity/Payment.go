package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending       = "pending"
	PaymentMethodPending = "pending"
)

// Payment is a placeholder row for a subscription charge; capture happens elsewhere.
type Payment struct {
	gorm.Model
	SubscriptionID uint            `gorm:"not null;index" json:"subscriptionId"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency       string          `gorm:"type:varchar(8);not null" json:"currency"`
	Method         string          `gorm:"type:varchar(16);not null" json:"method"`
	Status         string          `gorm:"type:varchar(16);not null" json:"status"`
}
