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

	"go.uber.org/zap"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	notes  repo.OrderNoteRepository
	events OrderEventPublisher
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	notes repo.OrderNoteRepository,
	events OrderEventPublisher,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, notes: notes, events: events}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type AdminOrderDetail struct {
	Order  model.Order        `json:"order"`
	Coupon *model.OrderCoupon `json:"coupon"`
	Notes  []model.OrderNote  `json:"notes"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return OrderListOutput{}, badRequest(CodeValidation, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, badRequest(CodeValidation, "invalid limit")
	}
	if f.Status != "" && !f.Status.Valid() {
		return OrderListOutput{}, badRequest(CodeValidation, "invalid status")
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return OrderListOutput{}, badRequest(CodeValidation, "from must be <= to")
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		util.GetLogger().Error("list admin orders", zap.Error(err))
		return OrderListOutput{}, internalError()
	}
	return OrderListOutput{Items: orders, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// 明細・クーポン・メモ付きの注文詳細
func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID int64) (AdminOrderDetail, error) {
	if orderID <= 0 {
		return AdminOrderDetail{}, badRequest(CodeValidation, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return AdminOrderDetail{}, notFound("order not found")
	}
	if err != nil {
		util.GetLogger().Error("find order", zap.Int64("order_id", orderID), zap.Error(err))
		return AdminOrderDetail{}, internalError()
	}

	oc, err := u.orders.FindCoupon(ctx, orderID)
	if err != nil {
		util.GetLogger().Error("find order coupon", zap.Int64("order_id", orderID), zap.Error(err))
		return AdminOrderDetail{}, internalError()
	}

	notes, err := u.notes.ListByOrderID(ctx, orderID)
	if err != nil {
		util.GetLogger().Error("list order notes", zap.Int64("order_id", orderID), zap.Error(err))
		return AdminOrderDetail{}, internalError()
	}

	return AdminOrderDetail{Order: o, Coupon: oc, Notes: notes}, nil
}

// ステータス更新（cancelled/refundedなら在庫戻し）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) (model.Order, error) {
	if actorAdminUserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, badRequest(CodeValidation, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return model.Order{}, badRequest(CodeValidation, "invalid status")
	}

	var (
		out    model.Order
		before model.OrderStatus
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文をロックして取得
		o, err := r.Orders().LockByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("order not found")
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		before = o.Status

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			out = o
			return nil
		}
		// 終端ガード
		if o.Status.Terminal() {
			return NewHTTPError(http.StatusConflict, CodeInvalidTransition, fmt.Sprintf("cannot change %s order", o.Status))
		}

		//完了前のキャンセル/返金だけ在庫を戻す
		if newStatus.Restocks() && o.Status != model.OrderStatusCompleted {
			if err := restockOrder(ctx, r, o, actorAdminUserID, newStatus); err != nil {
				return err
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("order not found")
			}
			return fmt.Errorf("update status: %w", err)
		}

		actor := actorAdminUserID
		if err := r.OrderNotes().Create(ctx, &model.OrderNote{
			OrderID:      orderID,
			Content:      fmt.Sprintf("Order status changed from %s to %s.", o.Status, newStatus),
			AuthorUserID: &actor,
		}); err != nil {
			return fmt.Errorf("order note: %w", err)
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		o.Status = newStatus
		out = o
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Order{}, err
		}
		util.GetLogger().Error("update order status", zap.Int64("order_id", orderID), zap.Error(err))
		return model.Order{}, internalError()
	}

	if before != newStatus {
		util.OrderStatusChangedTotal.WithLabelValues(string(newStatus)).Inc()
		u.publishStatusChanged(ctx, out, before, actorAdminUserID)
	}
	return out, nil
}

// この注文のsale行で減らした分だけ戻して台帳に残す
func restockOrder(ctx context.Context, r repo.TxRepos, o model.Order, actorAdminUserID int64, to model.OrderStatus) error {
	sales, err := r.Inventory().ListSalesByOrder(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}
	//減算していない注文は何もしない
	if len(sales) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(sales))
	sold := make(map[int64]int64, len(sales))
	for _, l := range sales {
		if _, ok := sold[l.ProductID]; !ok {
			ids = append(ids, l.ProductID)
		}
		sold[l.ProductID] += -l.QuantityChange
	}

	list, err := r.Products().FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	current := make(map[int64]model.Product, len(list))
	for _, p := range list {
		current[p.ID] = p
	}

	orderID := o.ID
	actor := actorAdminUserID
	for _, id := range ids {
		p, ok := current[id]
		qty := sold[id]
		//削除済みはスキップ
		if !ok || qty <= 0 {
			continue
		}

		prev := p.CurrentStock()
		next := prev + qty
		status := p.StatusFor(next)

		if err := r.Inventory().IncreaseStock(ctx, id, qty, status); err != nil {
			return fmt.Errorf("increase stock: %w", err)
		}
		if err := r.Inventory().CreateLog(ctx, model.InventoryLog{
			ProductID:        id,
			Type:             model.InventoryLogReturn,
			QuantityChange:   qty,
			PreviousQuantity: prev,
			NewQuantity:      next,
			OrderID:          &orderID,
			ActorUserID:      &actor,
			Note:             fmt.Sprintf("Order %s %s", o.OrderNumber, to),
		}); err != nil {
			return fmt.Errorf("inventory log: %w", err)
		}
	}
	return nil
}

func (u *AdminOrderUsecase) publishStatusChanged(ctx context.Context, o model.Order, from model.OrderStatus, actor int64) {
	err := u.events.PublishOrderStatusChanged(ctx, model.OrderStatusChangedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		From:        from,
		To:          o.Status,
		ActorUserID: actor,
	})
	if err != nil {
		util.EventPublishFailedTotal.WithLabelValues(model.EventTypeOrderStatusChanged).Inc()
		util.GetLogger().Warn("publish order.status_changed failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

type AdminAddOrderNoteInput struct {
	Content        string
	IsCustomerNote bool
}

func (u *AdminOrderUsecase) AddNote(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminAddOrderNoteInput) (model.OrderNote, error) {
	if actorAdminUserID <= 0 {
		return model.OrderNote{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.OrderNote{}, badRequest(CodeValidation, "invalid id")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.OrderNote{}, badRequest(CodeValidation, "content required")
	}

	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.OrderNote{}, notFound("order not found")
		}
		util.GetLogger().Error("find order", zap.Int64("order_id", orderID), zap.Error(err))
		return model.OrderNote{}, internalError()
	}

	actor := actorAdminUserID
	note := model.OrderNote{
		OrderID:        orderID,
		Content:        content,
		IsCustomerNote: in.IsCustomerNote,
		AuthorUserID:   &actor,
	}
	if err := u.notes.Create(ctx, &note); err != nil {
		util.GetLogger().Error("create order note", zap.Int64("order_id", orderID), zap.Error(err))
		return model.OrderNote{}, internalError()
	}
	return note, nil
}

// 期間パラメータ（RFC3339）。空ならnil。
func ParseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
