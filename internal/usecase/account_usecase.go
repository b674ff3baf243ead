package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// 会員本人の注文履歴
type AccountUsecase struct {
	orders repo.OrderRepository
}

func NewAccountUsecase(orders repo.OrderRepository) *AccountUsecase {
	return &AccountUsecase{orders: orders}
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *AccountUsecase) ListMyOrders(ctx context.Context, customerID int64, page int, limit int) (OrderListOutput, error) {
	if customerID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "login required")
	}
	if page < 1 {
		return OrderListOutput{}, badRequest(CodeValidation, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, badRequest(CodeValidation, "invalid limit")
	}

	orders, total, err := u.orders.ListByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		util.GetLogger().Error("list customer orders", zap.Int64("customer_id", customerID), zap.Error(err))
		return OrderListOutput{}, internalError()
	}

	return OrderListOutput{Items: orders, Total: total, Page: page, Limit: limit}, nil
}
