package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	//emailが重複したらErrConflict
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)

	// orders_count+1、total_spent加算、is_paying_customer=true
	RecordOrder(ctx context.Context, customerID int64, total decimal.Decimal) error

	UpdateLastLogin(ctx context.Context, customerID int64, at time.Time) error
}
