package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/internal/testdb"
	"github.com/kellyworkos00-droid/fairm/plans"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recordingNotifier struct {
	mu     sync.Mutex
	pushed []entity.Notification
}

func (n *recordingNotifier) Push(_ uint, note entity.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, note)
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	ctx context.Context
	db  *gorm.DB

	userRepo    *repository.UserRepository
	subRepo     *repository.SubscriptionRepository
	productRepo *repository.ProductRepository
	orderRepo   *repository.OrderRepository
	noteRepo    *repository.NotificationRepository

	products      *ProductService
	orders        *OrderService
	subs          *SubscriptionService
	analytics     *AnalyticsService
	notifications *NotificationService

	notifier *recordingNotifier
	events   *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	log := zap.NewNop()
	catalog := plans.Default()

	f := &fixture{
		ctx:         context.Background(),
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		subRepo:     repository.NewSubscriptionRepository(db),
		productRepo: repository.NewProductRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		noteRepo:    repository.NewNotificationRepository(db),
		notifier:    &recordingNotifier{},
		events:      &recordingPublisher{},
	}
	f.products = NewProductService(db, f.productRepo, f.userRepo, f.subRepo, catalog, nil, log)
	f.orders = NewOrderService(db, f.orderRepo, f.productRepo, f.subRepo, f.noteRepo, catalog, nil, f.notifier, f.events, log)
	f.orders.Now = clock
	f.subs = NewSubscriptionService(db, f.subRepo, catalog, log)
	f.subs.Now = clock
	f.analytics = NewAnalyticsService(f.orderRepo, f.productRepo)
	f.notifications = NewNotificationService(f.noteRepo)
	return f
}

// user inserts an account; tier "" leaves it without a subscription row.
func (f *fixture) user(t *testing.T, email string, role entity.Role, tier entity.Tier) entity.User {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Name: email, Role: role}
	require.NoError(t, f.db.Create(&u).Error)
	if tier != "" {
		require.NoError(t, f.db.Create(&entity.Subscription{
			UserID:       u.ID,
			Tier:         tier,
			Status:       entity.SubscriptionActive,
			MonthlyPrice: plans.Default().Price(tier),
			Currency:     plans.Currency,
		}).Error)
	}
	return u
}

func (f *fixture) farmer(t *testing.T, tier entity.Tier) entity.User {
	t.Helper()
	return f.user(t, "farmer-"+string(tier)+"-"+t.Name()+"@example.com", entity.RoleFarmer, tier)
}

func (f *fixture) buyer(t *testing.T) entity.User {
	t.Helper()
	return f.user(t, "buyer-"+t.Name()+"@example.com", entity.RoleBuyer, entity.TierFree)
}

func (f *fixture) product(t *testing.T, farmerID uint, name string, cat entity.ProductCategory, price int64, qty float64) entity.Product {
	t.Helper()
	p := entity.Product{
		Name:         name,
		Category:     cat,
		Unit:         entity.UnitKG,
		Quantity:     qty,
		PricePerUnit: decimal.NewFromInt(price),
		Location:     "Nakuru",
		Available:    true,
		FarmerID:     farmerID,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) delist(t *testing.T, productID uint) {
	t.Helper()
	require.NoError(t, f.db.Model(&entity.Product{}).Where("id = ?", productID).Update("available", false).Error)
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) reloadProduct(t *testing.T, id uint) entity.Product {
	t.Helper()
	var p entity.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// parallel runs fn n times at once and returns each call's error by index.
func parallel(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

func successes(errs []error) int {
	n := 0
	for _, err := range errs {
		if err == nil {
			n++
		}
	}
	return n
}
