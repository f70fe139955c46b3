package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/mq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seller-driven lifecycle:
//
//	PENDING -> CONFIRMED -> DELIVERED
//	PENDING | CONFIRMED -> CANCELLED
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:   {entity.OrderConfirmed, entity.OrderCancelled},
	entity.OrderConfirmed: {entity.OrderDelivered, entity.OrderCancelled},
}

func canTransition(from, to entity.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type UpdateStatusInput struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus lets the seller move an order along its lifecycle.
// Cancelling puts the ordered quantities back on the listings.
func (s *OrderService) UpdateStatus(ctx context.Context, sellerID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	var (
		order *entity.Order
		from  entity.OrderStatus
		note  entity.Notification
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.FindSold(tx, orderID, sellerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		from = o.Status
		if !canTransition(from, to) {
			return InvalidTransition(from, to)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return InvalidTransition(from, to)
		}

		switch to {
		case entity.OrderCancelled:
			for _, it := range o.Items {
				if err := s.Products.Restock(tx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
			err = s.Repo.UpdateDeliveryStatus(tx, o.ID, entity.DeliveryCancelled)
		case entity.OrderDelivered:
			err = s.Repo.UpdateDeliveryStatus(tx, o.ID, entity.DeliveryDelivered)
		}
		if err != nil {
			return err
		}

		note = entity.Notification{
			UserID:  o.BuyerID,
			Title:   "Order Updated",
			Message: fmt.Sprintf("Your order #%s is now %s", o.OrderNumber, strings.ToLower(string(to))),
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

	s.Log.Info("order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	if to == entity.OrderCancelled {
		s.Cache.Invalidate(ctx)
	}
	if s.Notifier != nil {
		s.Notifier.Push(note.UserID, note)
	}
	if s.Events != nil {
		s.publish(ctx, order.OrderNumber, mq.NewOrderStatusChanged(mq.StatusPayload{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			BuyerID:     order.BuyerID,
			SellerID:    order.SellerID,
			From:        string(from),
			To:          string(to),
		}, s.Now()))
	}
	return order, nil
}
