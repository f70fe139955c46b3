package configs

import (
	"errors"
	"fmt"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "password123"

// SeedDemo loads the demo farmer, buyer and reference listings. Running it
// twice is harmless: users are matched by email and reference rows by name.
func SeedDemo(db *gorm.DB, log *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		farmer, created, err := seedUser(tx, entity.User{
			Email: "farmer@example.com", Password: string(hash),
			Name: "John Farmer", Role: entity.RoleFarmer, Location: "Nakuru",
		}, entity.TierPremium, decimal.NewFromInt(500))
		if err != nil {
			return err
		}
		if _, _, err := seedUser(tx, entity.User{
			Email: "buyer@example.com", Password: string(hash),
			Name: "Mary Buyer", Role: entity.RoleBuyer, Location: "Nairobi",
		}, entity.TierFree, decimal.Zero); err != nil {
			return err
		}

		if created {
			products := []entity.Product{
				{Name: "Tomatoes", Category: entity.CategoryVegetables, Unit: entity.UnitKG, Quantity: 200, PricePerUnit: decimal.NewFromInt(80), Location: "Nakuru"},
				{Name: "Onions", Category: entity.CategoryVegetables, Unit: entity.UnitKG, Quantity: 300, PricePerUnit: decimal.NewFromInt(70), Location: "Nyeri"},
				{Name: "Maize", Category: entity.CategoryGrains, Unit: entity.UnitBag, Quantity: 100, PricePerUnit: decimal.NewFromInt(2500), Location: "Trans Nzoia"},
				{Name: "Milk", Category: entity.CategoryDairy, Unit: entity.UnitLitre, Quantity: 500, PricePerUnit: decimal.NewFromInt(60), Location: "Kiambu"},
			}
			for i := range products {
				products[i].FarmerID = farmer.ID
				products[i].Available = true
			}
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}

		agrovets := []entity.Agrovet{
			{Name: "Green Seeds Agrovet", Region: "Central", Rating: 4.5, Categories: []string{"seeds", "fertilizer"}, Services: []string{"delivery"}},
			{Name: "Harvest Hub Agrovet", Region: "Rift Valley", Rating: 4.2, Categories: []string{"tools", "fertilizer"}, Services: []string{"soil testing"}},
		}
		for _, a := range agrovets {
			if err := tx.Where(entity.Agrovet{Name: a.Name}).FirstOrCreate(&a).Error; err != nil {
				return fmt.Errorf("seed agrovet %s: %w", a.Name, err)
			}
		}

		now := time.Now()
		events := []entity.Event{
			{Title: "Nakuru Farmers Expo", Description: "Exhibition and training", Region: "Rift Valley", Category: "expo", StartDate: now.AddDate(0, 0, 7)},
			{Title: "Seed Selection Workshop", Description: "Choosing best seeds", Region: "Central", Category: "training", StartDate: now.AddDate(0, 0, 14)},
		}
		for _, e := range events {
			if err := tx.Where(entity.Event{Title: e.Title}).FirstOrCreate(&e).Error; err != nil {
				return fmt.Errorf("seed event %s: %w", e.Title, err)
			}
		}

		prices := []entity.MarketPrice{
			{Product: "Tomatoes", Market: "Wakulima Market", Region: "Nairobi", Price: decimal.NewFromInt(85), Unit: "KG", Source: "manual", Date: now},
			{Product: "Onions", Market: "Kongowea Market", Region: "Mombasa", Price: decimal.NewFromInt(75), Unit: "KG", Source: "manual", Date: now},
		}
		for _, p := range prices {
			if err := tx.Where(entity.MarketPrice{Product: p.Product, Market: p.Market}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed price %s: %w", p.Product, err)
			}
		}

		lessons := []entity.EducationContent{
			{Title: "Drip irrigation basics", Category: "irrigation", Body: "Setting up a low-cost drip line for smallholder plots."},
			{Title: "Post-harvest handling of tomatoes", Category: "post-harvest", Body: "Sorting, grading and cold chain for premium buyers.", IsPremium: true},
		}
		for _, l := range lessons {
			if err := tx.Where(entity.EducationContent{Title: l.Title}).FirstOrCreate(&l).Error; err != nil {
				return fmt.Errorf("seed lesson %s: %w", l.Title, err)
			}
		}

		log.Info("seed data ready", zap.String("farmer", farmer.Email))
		return nil
	})
}

func seedUser(tx *gorm.DB, u entity.User, tier entity.Tier, price decimal.Decimal) (*entity.User, bool, error) {
	var existing entity.User
	err := tx.Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := tx.Create(&u).Error; err != nil {
		return nil, false, fmt.Errorf("seed user %s: %w", u.Email, err)
	}
	sub := entity.Subscription{
		UserID: u.ID, Tier: tier, Status: entity.SubscriptionActive,
		MonthlyPrice: price, Currency: "KES",
	}
	if err := tx.Create(&sub).Error; err != nil {
		return nil, false, fmt.Errorf("seed subscription %s: %w", u.Email, err)
	}
	return &u, true, nil
}
