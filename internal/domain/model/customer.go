package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ストアの会員。注文の集計値を持つ
type Customer struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string          `gorm:"column:password_hash;not null" json:"-"`
	FirstName        string          `gorm:"type:varchar(100)" json:"first_name"`
	LastName         string          `gorm:"type:varchar(100)" json:"last_name"`
	Phone            string          `gorm:"type:varchar(30)" json:"phone"`
	OrdersCount      int64           `gorm:"not null;default:0" json:"orders_count"`
	TotalSpent       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_spent"`
	IsPayingCustomer bool            `gorm:"not null;default:false" json:"is_paying_customer"`
	LastLoginAt      *time.Time      `json:"last_login_at"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
