package mq

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID          uint            `json:"id"`
	OrderNumber string          `json:"order_number"`
	BuyerID     uint            `json:"buyer_id"`
	SellerID    uint            `json:"seller_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Commission  decimal.Decimal `json:"commission"`
	Items       []OrderLine     `json:"items"`
}

type OrderLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

func NewOrderCreated(p OrderPayload, at time.Time) OrderCreatedEvent {
	return OrderCreatedEvent{
		EventID:   uuid.NewString(),
		EventType: EventOrderCreated,
		Payload:   p,
		Timestamp: at,
	}
}

type OrderStatusChangedEvent struct {
	EventID   string        `json:"event_id"`
	EventType string        `json:"event_type"`
	Payload   StatusPayload `json:"payload"`
	Timestamp time.Time     `json:"timestamp"`
}

type StatusPayload struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"order_number"`
	BuyerID     uint   `json:"buyer_id"`
	SellerID    uint   `json:"seller_id"`
	From        string `json:"from"`
	To          string `json:"to"`
}

func NewOrderStatusChanged(p StatusPayload, at time.Time) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		EventID:   uuid.NewString(),
		EventType: EventOrderStatusChanged,
		Payload:   p,
		Timestamp: at,
	}
}
