package model

import "time"

// 注文の履歴メモ（追記のみ）
type OrderNote struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64     `gorm:"not null;index" json:"order_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsCustomerNote bool      `gorm:"not null;default:false" json:"is_customer_note"`
	AuthorUserID   *int64    `gorm:"index" json:"author_user_id"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
