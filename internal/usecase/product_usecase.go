package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	tx            repo.TransactionManager
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	tx repo.TransactionManager,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		tx:            tx,
	}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, badRequest(CodeValidation, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, badRequest(CodeValidation, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, badRequest(CodeValidation, "q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, badRequest(CodeValidation, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, badRequest(CodeValidation, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return ProductListOutput{}, badRequest(CodeValidation, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, badRequest(CodeValidation, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		util.GetLogger().Error("list products", zap.Error(err))
		return ProductListOutput{}, internalError()
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, badRequest(CodeValidation, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFound("product not found")
	}
	if err != nil {
		util.GetLogger().Error("find product", zap.Int64("product_id", productID), zap.Error(err))
		return model.Product{}, internalError()
	}

	//非公開は存在しない扱い
	if !p.IsActive {
		return model.Product{}, notFound("product not found")
	}
	return p, nil
}

type AdminUpdateInventoryInput struct {
	StockQuantity int64
	Reason        string
}

// 在庫を指定値にする（台帳＋監査ログ）
func (u *ProductUsecase) AdminUpdateInventory(ctx context.Context, adminUserID int64, productID int64, in AdminUpdateInventoryInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, badRequest(CodeValidation, "invalid product id")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, badRequest(CodeValidation, "stockQuantity must be >= 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return model.Product{}, badRequest(CodeValidation, "reason required")
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		locked, err := r.Products().FindByIDsForUpdate(ctx, []int64{productID})
		if err != nil {
			return fmt.Errorf("lock product: %w", err)
		}
		if len(locked) == 0 {
			return notFound("product not found")
		}
		p := locked[0]

		prev := p.CurrentStock()
		status := p.StatusFor(in.StockQuantity)

		if err := r.Inventory().SetStock(ctx, productID, in.StockQuantity, status); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("product not found")
			}
			return fmt.Errorf("set stock: %w", err)
		}

		actor := adminUserID
		if err := r.Inventory().CreateLog(ctx, model.InventoryLog{
			ProductID:        productID,
			Type:             model.InventoryLogAdjustment,
			QuantityChange:   in.StockQuantity - prev,
			PreviousQuantity: prev,
			NewQuantity:      in.StockQuantity,
			ActorUserID:      &actor,
			Note:             reason,
		}); err != nil {
			return fmt.Errorf("inventory log: %w", err)
		}

		//監査ログを作成（在庫更新）
		//「誰が」「何を」「どの対象に」「どう変えたか」を残す
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   fmt.Sprintf(`{"stock_quantity":%d,"stock_status":%q}`, prev, p.StockStatus),
			AfterJSON:    fmt.Sprintf(`{"stock_quantity":%d,"stock_status":%q}`, in.StockQuantity, status),
			CreatedAt:    time.Now(),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		qty := in.StockQuantity
		p.StockQuantity = &qty
		p.StockStatus = status
		out = p
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Product{}, err
		}
		util.GetLogger().Error("update inventory", zap.Int64("product_id", productID), zap.Error(err))
		return model.Product{}, internalError()
	}
	return out, nil
}

// 在庫台帳（新しい順）
func (u *ProductUsecase) AdminListInventoryLogs(ctx context.Context, productID int64, limit int, offset int) ([]model.InventoryLog, error) {
	if productID <= 0 {
		return []model.InventoryLog{}, badRequest(CodeValidation, "invalid product id")
	}
	if limit < 0 || offset < 0 {
		return []model.InventoryLog{}, badRequest(CodeValidation, "invalid limit/offset")
	}

	logs, err := u.inventoryRepo.ListLogs(ctx, productID, limit, offset)
	if err != nil {
		util.GetLogger().Error("list inventory logs", zap.Int64("product_id", productID), zap.Error(err))
		return []model.InventoryLog{}, internalError()
	}
	return logs, nil
}
