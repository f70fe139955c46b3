package configs

import (
	"fmt"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the relational store named by cfg.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return nil, errUnknownDriver(cfg.DBDriver)
	}

	// unique violations surface as gorm.ErrDuplicatedKey on every driver
	gcfg := &gorm.Config{TranslateError: true}
	if !cfg.IsDevelopment() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite has a single writer; one pooled connection avoids SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate the schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Subscription{}, &entity.Payment{},
		&entity.Product{},
		&entity.Order{}, &entity.OrderItem{}, &entity.Delivery{},
		&entity.Notification{},
		&entity.Agrovet{}, &entity.Event{}, &entity.EducationContent{}, &entity.MarketPrice{},
	)
}
