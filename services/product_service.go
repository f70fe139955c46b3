package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/plans"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	DB    *gorm.DB
	Repo  *repository.ProductRepository
	Users *repository.UserRepository
	Subs  *repository.SubscriptionRepository
	Plans *plans.Catalog
	Cache *ProductCache
	Log   *zap.Logger
}

func NewProductService(
	db *gorm.DB,
	repo *repository.ProductRepository,
	users *repository.UserRepository,
	subs *repository.SubscriptionRepository,
	catalog *plans.Catalog,
	cache *ProductCache,
	log *zap.Logger,
) *ProductService {
	return &ProductService{DB: db, Repo: repo, Users: users, Subs: subs, Plans: catalog, Cache: cache, Log: log}
}

// ----- DTOs from Controller -----

type CreateProductInput struct {
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	Category     entity.ProductCategory `json:"category" binding:"required"`
	Unit         entity.ProductUnit     `json:"unit" binding:"required"`
	Quantity     float64                `json:"quantity"`
	PricePerUnit decimal.Decimal        `json:"pricePerUnit"`
	Location     string                 `json:"location"`
	ImageURL     string                 `json:"imageUrl"`
}

func (in *CreateProductInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" {
		return Validation("name is required")
	}
	if !in.Category.Valid() {
		return Validation("unknown category %q", in.Category)
	}
	if !in.Unit.Valid() {
		return Validation("unknown unit %q", in.Unit)
	}
	if in.Quantity < 0 {
		return Validation("quantity must not be negative")
	}
	return checkPrice(in.PricePerUnit)
}

// checkPrice accepts positive prices in whole cents.
func checkPrice(p decimal.Decimal) error {
	if !p.IsPositive() {
		return Validation("pricePerUnit must be greater than zero")
	}
	if !p.Equal(p.Round(2)) {
		return Validation("pricePerUnit allows at most 2 decimal places")
	}
	return nil
}

// UpdateProductInput is a partial update; nil fields are left alone.
type UpdateProductInput struct {
	Name         *string                 `json:"name"`
	Description  *string                 `json:"description"`
	Category     *entity.ProductCategory `json:"category"`
	Unit         *entity.ProductUnit     `json:"unit"`
	Quantity     *float64                `json:"quantity"`
	PricePerUnit *decimal.Decimal        `json:"pricePerUnit"`
	Location     *string                 `json:"location"`
	ImageURL     *string                 `json:"imageUrl"`
	Available    *bool                   `json:"available"`
}

func (in *UpdateProductInput) columns() (map[string]any, error) {
	up := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, Validation("name must not be empty")
		}
		up["name"] = name
	}
	if in.Description != nil {
		up["description"] = *in.Description
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, Validation("unknown category %q", *in.Category)
		}
		up["category"] = *in.Category
	}
	if in.Unit != nil {
		if !in.Unit.Valid() {
			return nil, Validation("unknown unit %q", *in.Unit)
		}
		up["unit"] = *in.Unit
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, Validation("quantity must not be negative")
		}
		up["quantity"] = *in.Quantity
	}
	if in.PricePerUnit != nil {
		if err := checkPrice(*in.PricePerUnit); err != nil {
			return nil, err
		}
		up["price_per_unit"] = *in.PricePerUnit
	}
	if in.Location != nil {
		up["location"] = strings.TrimSpace(*in.Location)
	}
	if in.ImageURL != nil {
		up["image_url"] = *in.ImageURL
	}
	if in.Available != nil {
		up["available"] = *in.Available
	}
	return up, nil
}

// ----- Queries -----

// List serves the public catalogue, from redis when a fresh copy is there.
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)
	if f.Category != "" && !f.Category.Valid() {
		return nil, Validation("unknown category %q", f.Category)
	}

	if cached, ok := s.Cache.Get(ctx, f); ok {
		return cached, nil
	}
	out, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, f, out)
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *ProductService) ListMine(ctx context.Context, farmerID uint) ([]entity.Product, error) {
	return s.Repo.ListByFarmer(ctx, farmerID)
}

// ----- Commands -----

// Create lists a new product for farmerID if their tier still has room.
// The farmer row is locked first so two concurrent creates cannot both
// pass the count check.
func (s *ProductService) Create(ctx context.Context, farmerID uint, in CreateProductInput) (*entity.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var id uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkCapacity(tx, farmerID); err != nil {
			return err
		}
		p := entity.Product{
			Name:         in.Name,
			Description:  in.Description,
			Category:     in.Category,
			Unit:         in.Unit,
			Quantity:     in.Quantity,
			PricePerUnit: in.PricePerUnit,
			Location:     in.Location,
			ImageURL:     in.ImageURL,
			Available:    true,
			FarmerID:     farmerID,
		}
		if err := s.Repo.Create(tx, &p); err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx)
	s.Log.Info("product listed", zap.Uint("product_id", id), zap.Uint("farmer_id", farmerID))
	return s.Get(ctx, id)
}

// checkCapacity locks the farmer and compares live listings with the plan cap.
func (s *ProductService) checkCapacity(tx *gorm.DB, farmerID uint) error {
	farmer, err := s.Users.LockForUpdate(tx, farmerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if farmer.Role != entity.RoleFarmer {
		return newError(KindForbidden, "only farmers can list products")
	}

	tier, err := s.Subs.TierOf(tx, farmerID)
	if err != nil {
		return err
	}
	count, err := s.Repo.CountLive(tx, farmerID)
	if err != nil {
		return err
	}
	if !s.Plans.Resolve(tier).AllowsProducts(count) {
		return ErrLimitExceeded
	}
	return nil
}

// Update applies a partial edit. Relisting a delisted product goes through
// the same capacity check as Create.
func (s *ProductService) Update(ctx context.Context, farmerID, productID uint, in UpdateProductInput) (*entity.Product, error) {
	up, err := in.columns()
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.ownedForUpdate(tx, farmerID, productID)
		if err != nil {
			return err
		}
		if in.Available != nil && *in.Available && !p.Available {
			if err := s.checkCapacity(tx, farmerID); err != nil {
				return err
			}
		}
		if len(up) == 0 {
			return nil
		}
		return s.Repo.Update(tx, productID, up)
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx)
	return s.Get(ctx, productID)
}

// Remove delists the product. Rows stay so past order items keep their product.
func (s *ProductService) Remove(ctx context.Context, farmerID, productID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedForUpdate(tx, farmerID, productID); err != nil {
			return err
		}
		return s.Repo.Update(tx, productID, map[string]any{"available": false})
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	s.Log.Info("product delisted", zap.Uint("product_id", productID), zap.Uint("farmer_id", farmerID))
	return nil
}

func (s *ProductService) ownedForUpdate(tx *gorm.DB, farmerID, productID uint) (*entity.Product, error) {
	p, err := s.Repo.FindForUpdate(tx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.FarmerID != farmerID {
		return nil, ErrNotOwner
	}
	return p, nil
}
