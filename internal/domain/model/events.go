package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// イベント種別
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// 全イベント共通
type BaseEvent struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`
}

type OrderEventItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// チェックアウト確定後に送る
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     int64            `json:"orderId"`
	OrderNumber string           `json:"orderNumber"`
	CustomerID  *int64           `json:"customerId,omitempty"`
	Total       decimal.Decimal  `json:"total"`
	Items       []OrderEventItem `json:"items"`
}

// 管理画面でステータスを変えた時に送る
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID     int64       `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
	ActorUserID int64       `json:"actorUserId"`
}
