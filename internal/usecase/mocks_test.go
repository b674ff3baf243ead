package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録
	m.Called()
	return fn(m.Repos)
}

type txReposMock struct {
	orders     *OrderRepoMock
	orderNotes *OrderNoteRepoMock
	products   *ProductRepoMock
	inventory  *InventoryRepoMock
	coupons    *CouponRepoMock
	customers  *CustomerRepoMock
	auditLogs  *AuditRepoMock
}

func newTxReposMock() *txReposMock {
	return &txReposMock{
		orders:     new(OrderRepoMock),
		orderNotes: new(OrderNoteRepoMock),
		products:   new(ProductRepoMock),
		inventory:  new(InventoryRepoMock),
		coupons:    new(CouponRepoMock),
		customers:  new(CustomerRepoMock),
		auditLogs:  new(AuditRepoMock),
	}
}

func (r *txReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMock) OrderNotes() repo.OrderNoteRepository { return r.orderNotes }
func (r *txReposMock) Products() repo.ProductRepository     { return r.products }
func (r *txReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposMock) Coupons() repo.CouponRepository       { return r.coupons }
func (r *txReposMock) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) LockByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) AttachCoupon(ctx context.Context, oc model.OrderCoupon) error {
	args := m.Called(ctx, oc)
	return args.Error(0)
}

func (m *OrderRepoMock) FindCoupon(ctx context.Context, orderID int64) (*model.OrderCoupon, error) {
	args := m.Called(ctx, orderID)
	oc, _ := args.Get(0).(*model.OrderCoupon)
	return oc, args.Error(1)
}

type OrderNoteRepoMock struct{ mock.Mock }

func (m *OrderNoteRepoMock) Create(ctx context.Context, note *model.OrderNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *OrderNoteRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderNote, error) {
	args := m.Called(ctx, orderID)
	notes, _ := args.Get(0).([]model.OrderNote)
	return notes, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.Product)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]model.Product)
	return list, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64, status model.StockStatus) (bool, error) {
	args := m.Called(ctx, productID, qty, status)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64, status model.StockStatus) error {
	args := m.Called(ctx, productID, qty, status)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64, status model.StockStatus) error {
	args := m.Called(ctx, productID, newStock, status)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateLog(ctx context.Context, log model.InventoryLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *InventoryRepoMock) ListSalesByOrder(ctx context.Context, orderID int64) ([]model.InventoryLog, error) {
	args := m.Called(ctx, orderID)
	logs, _ := args.Get(0).([]model.InventoryLog)
	return logs, args.Error(1)
}

func (m *InventoryRepoMock) ListLogs(ctx context.Context, productID int64, limit int, offset int) ([]model.InventoryLog, error) {
	args := m.Called(ctx, productID, limit, offset)
	logs, _ := args.Get(0).([]model.InventoryLog)
	return logs, args.Error(1)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) ClaimUsage(ctx context.Context, couponID int64) (bool, error) {
	args := m.Called(ctx, couponID)
	return args.Bool(0), args.Error(1)
}

func (m *CouponRepoMock) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Coupon)
	return out, args.Error(1)
}

func (m *CouponRepoMock) List(ctx context.Context, limit int, offset int) ([]model.Coupon, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]model.Coupon)
	return list, args.Get(1).(int64), args.Error(2)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) RecordOrder(ctx context.Context, customerID int64, total decimal.Decimal) error {
	args := m.Called(ctx, customerID, total)
	return args.Error(0)
}

func (m *CustomerRepoMock) UpdateLastLogin(ctx context.Context, customerID int64, at time.Time) error {
	args := m.Called(ctx, customerID, at)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogListFilter) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

// =====================
// Event publisher mock
// =====================

type EventPublisherMock struct{ mock.Mock }

func (m *EventPublisherMock) PublishOrderPlaced(ctx context.Context, event model.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventPublisherMock) PublishOrderStatusChanged(ctx context.Context, event model.OrderStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var (
	_ repo.TransactionManager  = (*TxManagerMock)(nil)
	_ repo.TxRepos             = (*txReposMock)(nil)
	_ repo.OrderRepository     = (*OrderRepoMock)(nil)
	_ repo.OrderNoteRepository = (*OrderNoteRepoMock)(nil)
	_ repo.ProductRepository   = (*ProductRepoMock)(nil)
	_ repo.InventoryRepository = (*InventoryRepoMock)(nil)
	_ repo.CouponRepository    = (*CouponRepoMock)(nil)
	_ repo.CustomerRepository  = (*CustomerRepoMock)(nil)
	_ repo.AuditLogRepository  = (*AuditRepoMock)(nil)
	_ OrderEventPublisher      = (*EventPublisherMock)(nil)
)

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

// HTTPErrorのstatus/codeを確認
func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, code, he.Code)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
