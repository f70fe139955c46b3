package entity

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Region      string     `gorm:"index" json:"region"`
	Category    string     `gorm:"index" json:"category"`
	Location    string     `json:"location"`
	StartDate   time.Time  `gorm:"not null;index" json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}
