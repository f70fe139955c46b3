package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MarketPrice struct {
	gorm.Model
	Product string          `gorm:"not null;index" json:"product"`
	Market  string          `gorm:"not null;index" json:"market"`
	Region  string          `json:"region"`
	Price   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Unit    string          `gorm:"not null" json:"unit"`
	Source  string          `gorm:"not null;default:manual" json:"source"`
	Date    time.Time       `gorm:"not null;index" json:"date"`
}
