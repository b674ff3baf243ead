package model

import "time"

type InventoryLogType string

const (
	InventoryLogSale       InventoryLogType = "sale"
	InventoryLogReturn     InventoryLogType = "return"
	InventoryLogAdjustment InventoryLogType = "adjustment"
)

// 在庫変動の台帳（追記のみ、更新しない）
type InventoryLog struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID        int64            `gorm:"not null;index" json:"product_id"`
	Type             InventoryLogType `gorm:"type:varchar(20);not null;index" json:"type"`
	QuantityChange   int64            `gorm:"not null" json:"quantity_change"`
	PreviousQuantity int64            `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int64            `gorm:"not null" json:"new_quantity"`
	OrderID          *int64           `gorm:"index" json:"order_id"`
	ActorUserID      *int64           `gorm:"index" json:"actor_user_id"`
	Note             string           `gorm:"type:varchar(255)" json:"note"`
	CreatedAt        time.Time        `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
