package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/mq"
	"github.com/kellyworkos00-droid/fairm/plans"
	"github.com/kellyworkos00-droid/fairm/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publishTimeout = 3 * time.Second
	// keeps quantity x price within the six places stored for amounts
	maxQuantityPlaces = 3
)

type OrderService struct {
	DB            *gorm.DB
	Repo          *repository.OrderRepository
	Products      *repository.ProductRepository
	Subs          *repository.SubscriptionRepository
	Notifications *repository.NotificationRepository
	Plans         *plans.Catalog
	Cache         *ProductCache
	Notifier      Notifier
	Events        mq.Publisher
	Log           *zap.Logger

	Now func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	products *repository.ProductRepository,
	subs *repository.SubscriptionRepository,
	notifications *repository.NotificationRepository,
	catalog *plans.Catalog,
	cache *ProductCache,
	notifier Notifier,
	events mq.Publisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, Products: products, Subs: subs, Notifications: notifications,
		Plans: catalog, Cache: cache, Notifier: notifier, Events: events, Log: log,
		Now: time.Now,
	}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

type PlaceOrderInput struct {
	Items           []OrderItemIn `json:"items" binding:"dive"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Notes           string        `json:"notes"`
}

func (in *PlaceOrderInput) validate() error {
	if len(in.Items) == 0 {
		return ErrEmptyOrder
	}
	for i, it := range in.Items {
		if it.Quantity <= 0 {
			return Validation("item %d: quantity must be greater than zero", i+1)
		}
		if q := decimal.NewFromFloat(it.Quantity); !q.Equal(q.Truncate(maxQuantityPlaces)) {
			return Validation("item %d: quantity allows at most %d decimal places", i+1, maxQuantityPlaces)
		}
	}
	return nil
}

// newOrderNumber is ORD-<yyyymmdd>-<8 hex>; the unique index catches the rare clash.
func (s *OrderService) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", s.Now().UTC().Format("20060102"), suffix)
}

// ----- Place -----

// Place prices every line from the current listing at full precision, takes the seller's
// commission and writes the order, its items, a pending delivery and the
// seller notification in one transaction. Stock is decremented with a
// conditional update so two buyers cannot both take the last unit.
func (s *OrderService) Place(ctx context.Context, buyerID uint, in PlaceOrderInput) (*entity.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		order *entity.Order
		note  entity.Notification
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			sellerID  uint
			total     = decimal.Zero
			items     = make([]entity.OrderItem, 0, len(in.Items))
			requested = map[uint]float64{}
		)
		for i, it := range in.Items {
			p, err := s.Products.FindForUpdate(tx, it.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ProductUnavailable(it.ProductID)
			}
			if err != nil {
				return err
			}
			if !p.Available {
				return ProductUnavailable(it.ProductID)
			}
			if i == 0 {
				sellerID = p.FarmerID
			} else if p.FarmerID != sellerID {
				return ErrMixedSellers
			}

			requested[p.ID] += it.Quantity
			if requested[p.ID] > p.Quantity {
				return InsufficientStock(p.ID)
			}

			subtotal := decimal.NewFromFloat(it.Quantity).Mul(p.PricePerUnit)
			total = total.Add(subtotal)
			items = append(items, entity.OrderItem{
				ProductID:    p.ID,
				Quantity:     it.Quantity,
				PricePerUnit: p.PricePerUnit,
				Subtotal:     subtotal,
			})
		}

		tier, err := s.Subs.TierOf(tx, sellerID)
		if err != nil {
			return err
		}
		commission := total.Mul(s.Plans.CommissionRate(tier)).Round(2)

		o := entity.Order{
			OrderNumber:     s.newOrderNumber(),
			TotalAmount:     total,
			Commission:      commission,
			Status:          entity.OrderPending,
			DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
			Notes:           in.Notes,
			BuyerID:         buyerID,
			SellerID:        sellerID,
		}
		if err := s.Repo.CreateOrder(tx, &o); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = o.ID
			if err := s.Repo.CreateOrderItem(tx, &items[i]); err != nil {
				return err
			}
			ok, err := s.Products.DecrementStock(tx, items[i].ProductID, items[i].Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return InsufficientStock(items[i].ProductID)
			}
		}

		if err := s.Repo.CreateDelivery(tx, &entity.Delivery{OrderID: o.ID, Status: entity.DeliveryPending}); err != nil {
			return err
		}

		note = entity.Notification{
			UserID:  sellerID,
			Title:   "New Order Received",
			Message: fmt.Sprintf("You have a new order #%s for KES %s", o.OrderNumber, total.String()),
			Type:    entity.NotificationOrderUpdate,
			Link:    fmt.Sprintf("/orders/%d", o.ID),
		}
		if err := s.Notifications.Create(tx, &note); err != nil {
			return err
		}

		order, err = s.Repo.LoadGraph(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Uint("buyer_id", buyerID),
		zap.Uint("seller_id", order.SellerID),
		zap.String("total", order.TotalAmount.String()),
		zap.String("commission", order.Commission.String()),
	)
	s.afterCommit(ctx, order, note)
	return order, nil
}

// afterCommit runs the side effects that must not roll the order back.
func (s *OrderService) afterCommit(ctx context.Context, o *entity.Order, note entity.Notification) {
	s.Cache.Invalidate(ctx)

	if s.Notifier != nil {
		s.Notifier.Push(note.UserID, note)
	}

	if s.Events == nil {
		return
	}
	ev := mq.NewOrderCreated(mq.OrderPayload{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BuyerID:     o.BuyerID,
		SellerID:    o.SellerID,
		TotalAmount: o.TotalAmount,
		Commission:  o.Commission,
		Items: lo.Map(o.Items, func(it entity.OrderItem, _ int) mq.OrderLine {
			return mq.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity}
		}),
	}, s.Now())

	s.publish(ctx, o.OrderNumber, ev)
}

// publish outlives the request; a broker failure is logged, never returned.
func (s *OrderService) publish(ctx context.Context, key string, ev any) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.Events.Publish(pctx, key, ev); err != nil {
		s.Log.Warn("publish order event failed", zap.String("order_number", key), zap.Error(err))
	}
}

// ----- List & Detail -----

// List returns the orders the user bought (buyers) or sold (farmers), newest first.
func (s *OrderService) List(ctx context.Context, userID uint, role entity.Role) ([]entity.Order, error) {
	switch role {
	case entity.RoleBuyer:
		return s.Repo.ListForBuyer(ctx, userID)
	case entity.RoleFarmer:
		return s.Repo.ListForSeller(ctx, userID)
	default:
		return []entity.Order{}, nil
	}
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.FindForParty(ctx, orderID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}
