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

// 注文イベントの送信先（Kafka or 何もしない）
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event model.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event model.OrderStatusChangedEvent) error
}

type CheckoutUsecase struct {
	tx       repo.TransactionManager
	events   OrderEventPublisher
	now      func() time.Time
	numberFn func(time.Time) string
}

// DI
func NewCheckoutUsecase(tx repo.TransactionManager, events OrderEventPublisher) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:       tx,
		events:   events,
		now:      time.Now,
		numberFn: NewOrderNumber,
	}
}

type CheckoutItemInput struct {
	ProductID int64
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	SKU       string
	Image     string
}

type CheckoutAddressInput struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

type PlaceOrderInput struct {
	// セッションから解決した会員ID（ゲストはnil）
	CustomerID *int64

	Items    []CheckoutItemInput
	Billing  CheckoutAddressInput
	Shipping *CheckoutAddressInput

	PaymentMethod      string
	PaymentMethodTitle string
	CustomerNote       string
	CouponCode         string

	Subtotal      decimal.Decimal
	ShippingTotal decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
}

type PlacedOrder struct {
	ID          int64             `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Total       decimal.Decimal   `json:"total"`
	Status      model.OrderStatus `json:"status"`
}

const orderCreatedNote = "Order placed via checkout."

// PlaceOrder validates the cart, then creates the order, claims the coupon,
// decrements stock and updates customer stats in one transaction.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlacedOrder, error) {
	ctx, span := util.StartSpan(ctx, "checkout.PlaceOrder")
	defer span.End()

	//入力チェック（ここまでは何も書き込まない）
	if err := validatePlaceOrder(in); err != nil {
		recordCheckoutFailure(err)
		return PlacedOrder{}, err
	}

	now := u.now()
	var (
		created    model.Order
		decrements int
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品をまとめてロック付きで取得
		products, err := loadProducts(ctx, r, in.Items)
		if err != nil {
			return err
		}

		//クーポン（失敗しても注文は通す）
		applied, coupon, err := u.applyCoupon(ctx, r, in.CouponCode, in.Subtotal, now)
		if err != nil {
			return err
		}

		//会員が消えていたらゲスト扱い
		customerID, err := resolveCustomer(ctx, r, in.CustomerID)
		if err != nil {
			return err
		}

		order := buildOrder(in, products, customerID, applied)
		if err := u.createOrder(ctx, r, &order, now); err != nil {
			return err
		}

		if coupon != nil {
			if err := r.Orders().AttachCoupon(ctx, model.OrderCoupon{
				OrderID:  order.ID,
				CouponID: coupon.ID,
				Code:     coupon.Code,
				Discount: applied,
			}); err != nil {
				return fmt.Errorf("attach coupon: %w", err)
			}
		}

		//在庫減算＋台帳
		n, err := decrementStock(ctx, r, order, products)
		if err != nil {
			return err
		}
		decrements = n

		if customerID != nil {
			if err := r.Customers().RecordOrder(ctx, *customerID, order.Total); err != nil {
				return fmt.Errorf("record customer order: %w", err)
			}
		}

		if err := writeCheckoutNote(ctx, r, order.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); !ok {
			util.GetLogger().Error("checkout failed", zap.Error(err))
			err = internalError()
		}
		recordCheckoutFailure(err)
		return PlacedOrder{}, err
	}

	util.OrdersPlacedTotal.Inc()
	util.StockDecrementTotal.Add(float64(decrements))

	u.publishPlaced(ctx, created)

	return PlacedOrder{
		ID:          created.ID,
		OrderNumber: created.OrderNumber,
		Total:       created.Total,
		Status:      created.Status,
	}, nil
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return badRequest(CodeEmptyCart, "cart is empty")
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return badRequest(CodeInvalidItem, fmt.Sprintf("items[%d] must have a product id and a positive quantity", i))
		}
		if it.Price.IsNegative() {
			return badRequest(CodeInvalidItem, fmt.Sprintf("items[%d] price must be >= 0", i))
		}
	}

	required := []struct {
		field string
		value string
	}{
		{"firstName", in.Billing.FirstName},
		{"lastName", in.Billing.LastName},
		{"phone", in.Billing.Phone},
		{"address1", in.Billing.Address1},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return badRequest(CodeMissingBillingField, "billing."+f.field+" is required")
		}
	}
	return nil
}

func loadProducts(ctx context.Context, r repo.TxRepos, items []CheckoutItemInput) (map[int64]model.Product, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}

	list, err := r.Products().FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	products := make(map[int64]model.Product, len(list))
	for _, p := range list {
		products[p.ID] = p
	}

	//同じ商品が複数行あっても合計で判定
	requested := make(map[int64]int64, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok || !p.IsActive {
			return nil, badRequest(CodeProductNotFound, fmt.Sprintf("product %d not found", it.ProductID))
		}
		requested[it.ProductID] += it.Quantity
		if !p.HasStockFor(requested[it.ProductID]) {
			return nil, badRequest(CodeInsufficientStock, fmt.Sprintf("insufficient stock for %s", p.Name))
		}
	}
	return products, nil
}

// 適用できたクーポンと割引額を返す。使えない時は0円でnil。
func (u *CheckoutUsecase) applyCoupon(ctx context.Context, r repo.TxRepos, code string, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, *model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return decimal.Zero, nil, nil
	}

	c, err := r.Coupons().FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		couponSoftFail(code, "not_found")
		return decimal.Zero, nil, nil
	}
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("find coupon: %w", err)
	}

	if rejection := c.Check(subtotal, now); rejection != model.CouponOK {
		couponSoftFail(code, string(rejection))
		return decimal.Zero, nil, nil
	}

	//上限の取り合いに負けたら割引なし
	claimed, err := r.Coupons().ClaimUsage(ctx, c.ID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("claim coupon: %w", err)
	}
	if !claimed {
		couponSoftFail(code, string(model.CouponUsageExhausted))
		return decimal.Zero, nil, nil
	}

	return c.DiscountFor(subtotal), &c, nil
}

func couponSoftFail(code string, reason string) {
	util.CouponSoftFailTotal.WithLabelValues(reason).Inc()
	util.GetLogger().Info("coupon ignored at checkout", zap.String("code", code), zap.String("reason", reason))
}

func resolveCustomer(ctx context.Context, r repo.TxRepos, customerID *int64) (*int64, error) {
	if customerID == nil {
		return nil, nil
	}
	c, err := r.Customers().FindByID(ctx, *customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	id := c.ID
	return &id, nil
}

func buildOrder(in PlaceOrderInput, products map[int64]model.Product, customerID *int64, applied decimal.Decimal) model.Order {
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p := products[it.ProductID]

		//スナップショット（空なら商品の値）
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = p.Name
		}
		sku := it.SKU
		if sku == "" {
			sku = p.SKU
		}
		image := it.Image
		if image == "" {
			image = p.Image
		}

		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      name,
			SKU:       sku,
			Image:     image,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: it.Price.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	billing := toAddressSnapshot(in.Billing)
	shipping := billing
	if in.Shipping != nil {
		shipping = toAddressSnapshot(*in.Shipping)
	}

	return model.Order{
		CustomerID:         customerID,
		Status:             model.OrderStatusPending,
		Currency:           "VND",
		PaymentMethod:      strings.TrimSpace(in.PaymentMethod),
		PaymentMethodTitle: strings.TrimSpace(in.PaymentMethodTitle),
		CustomerNote:       strings.TrimSpace(in.CustomerNote),
		Subtotal:           in.Subtotal,
		ShippingTotal:      in.ShippingTotal,
		DiscountTotal:      applied,
		Total:              in.Total.Sub(applied.Sub(in.DiscountTotal)),
		Billing:            billing,
		Shipping:           shipping,
		Items:              items,
	}
}

func toAddressSnapshot(a CheckoutAddressInput) model.AddressSnapshot {
	return model.AddressSnapshot{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Company:   strings.TrimSpace(a.Company),
		Address1:  strings.TrimSpace(a.Address1),
		Address2:  strings.TrimSpace(a.Address2),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Postcode:  strings.TrimSpace(a.Postcode),
		Country:   strings.TrimSpace(a.Country),
		Email:     strings.TrimSpace(a.Email),
		Phone:     strings.TrimSpace(a.Phone),
	}
}

// 注文番号がぶつかったら振り直す
func (u *CheckoutUsecase) createOrder(ctx context.Context, r repo.TxRepos, order *model.Order, now time.Time) error {
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		order.ID = 0
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = 0
		}
		order.OrderNumber = u.numberFn(now)

		err := r.Orders().Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrConflict) {
			return fmt.Errorf("create order: %w", err)
		}
		util.GetLogger().Warn("order number collision", zap.String("order_number", order.OrderNumber), zap.Int("attempt", attempt))
	}
	return fmt.Errorf("create order: no unique order number after %d attempts", orderNumberAttempts)
}

// 管理対象の商品だけ減らす。減らした行数を返す。
func decrementStock(ctx context.Context, r repo.TxRepos, order model.Order, products map[int64]model.Product) (int, error) {
	current := make(map[int64]int64, len(products))
	for id, p := range products {
		current[id] = p.CurrentStock()
	}

	orderID := order.ID
	n := 0
	for _, it := range order.Items {
		p := products[it.ProductID]
		if !p.ManageStock {
			continue
		}

		prev := current[it.ProductID]
		next := prev - it.Quantity

		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity, p.StatusFor(next))
		if err != nil {
			return 0, fmt.Errorf("decrease stock: %w", err)
		}
		if !ok {
			return 0, badRequest(CodeInsufficientStock, fmt.Sprintf("insufficient stock for %s", p.Name))
		}

		if err := r.Inventory().CreateLog(ctx, model.InventoryLog{
			ProductID:        it.ProductID,
			Type:             model.InventoryLogSale,
			QuantityChange:   -it.Quantity,
			PreviousQuantity: prev,
			NewQuantity:      next,
			OrderID:          &orderID,
			Note:             "Order " + order.OrderNumber,
		}); err != nil {
			return 0, fmt.Errorf("inventory log: %w", err)
		}

		current[it.ProductID] = next
		n++
	}
	return n, nil
}

// 作成メモは1件だけ（お客様メモはOrder.CustomerNoteに保存済み）
func writeCheckoutNote(ctx context.Context, r repo.TxRepos, orderID int64) error {
	if err := r.OrderNotes().Create(ctx, &model.OrderNote{
		OrderID: orderID,
		Content: orderCreatedNote,
	}); err != nil {
		return fmt.Errorf("order note: %w", err)
	}
	return nil
}

// コミット後に送る。失敗しても注文は成功のまま。
func (u *CheckoutUsecase) publishPlaced(ctx context.Context, o model.Order) {
	items := make([]model.OrderEventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, model.OrderEventItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	err := u.events.PublishOrderPlaced(ctx, model.OrderPlacedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Total:       o.Total,
		Items:       items,
	})
	if err != nil {
		util.EventPublishFailedTotal.WithLabelValues(model.EventTypeOrderPlaced).Inc()
		util.GetLogger().Warn("publish order.placed failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

func recordCheckoutFailure(err error) {
	reason := strings.ToLower(CodeInternal)
	if he, ok := AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
		reason = strings.ToLower(he.Code)
	}
	util.CheckoutFailedTotal.WithLabelValues(reason).Inc()
}
