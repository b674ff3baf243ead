package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusOnHold, OrderStatusCompleted,
		OrderStatusCancelled, OrderStatusRefunded, OrderStatusFailed:
		return true
	}
	return false
}

// これ以上ステータスを変えられない
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded || s == OrderStatusFailed
}

// 在庫を戻すステータス
func (s OrderStatus) Restocks() bool {
	return s == OrderStatusCancelled || s == OrderStatusRefunded
}

// 注文時点の住所のコピー（住所テーブルへの外部キーではない）
type AddressSnapshot struct {
	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Company   string `gorm:"type:varchar(255)" json:"company"`
	Address1  string `gorm:"type:varchar(255)" json:"address_1"`
	Address2  string `gorm:"type:varchar(255)" json:"address_2"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	State     string `gorm:"type:varchar(100)" json:"state"`
	Postcode  string `gorm:"type:varchar(20)" json:"postcode"`
	Country   string `gorm:"type:varchar(2)" json:"country"`
	Email     string `gorm:"type:varchar(255)" json:"email"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
}

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`
	CustomerID  *int64      `gorm:"index" json:"customer_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Currency    string      `gorm:"type:varchar(3);not null;default:'VND'" json:"currency"`

	PaymentMethod      string `gorm:"type:varchar(100);not null" json:"payment_method"`
	PaymentMethodTitle string `gorm:"type:varchar(255)" json:"payment_method_title"`
	CustomerNote       string `gorm:"type:text" json:"customer_note"`

	Subtotal      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	ShippingTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"shipping_total"`
	DiscountTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"discount_total"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`

	Billing  AddressSnapshot `gorm:"embedded;embeddedPrefix:billing_" json:"billing"`
	Shipping AddressSnapshot `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`

	//注文と同時に作成される
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
