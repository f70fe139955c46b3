package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Tier string

const (
	TierFree       Tier = "FREE"
	TierPremium    Tier = "PREMIUM"
	TierEnterprise Tier = "ENTERPRISE"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

type Subscription struct {
	gorm.Model
	UserID           uint            `gorm:"uniqueIndex;not null" json:"userId"`
	Tier             Tier            `gorm:"type:varchar(16);not null;default:FREE" json:"tier"`
	Status           string          `gorm:"type:varchar(16);not null;default:active" json:"status"`
	MonthlyPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthlyPrice"`
	Currency         string          `gorm:"type:varchar(8);not null;default:KES" json:"currency"`
	CurrentPeriodEnd *time.Time      `json:"currentPeriodEnd"`

	Payments []Payment `json:"-"`
}
