package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStockStatus(t *testing.T) {
	assert.Equal(t, StockStatusOutOfStock, ComputeStockStatus(0, 5))
	assert.Equal(t, StockStatusOutOfStock, ComputeStockStatus(-2, 5))
	assert.Equal(t, StockStatusOnBackorder, ComputeStockStatus(5, 5))
	assert.Equal(t, StockStatusOnBackorder, ComputeStockStatus(1, 5))
	assert.Equal(t, StockStatusInStock, ComputeStockStatus(6, 5))
}

func TestProduct_StatusFor_UsesOwnThreshold(t *testing.T) {
	low := int64(2)
	p := Product{LowStockAmount: &low}
	assert.Equal(t, StockStatusInStock, p.StatusFor(3))

	// 未設定は5
	assert.Equal(t, StockStatusOnBackorder, Product{}.StatusFor(5))
}

func TestProduct_HasStockFor(t *testing.T) {
	qty := int64(3)
	managed := Product{ManageStock: true, StockQuantity: &qty}
	assert.True(t, managed.HasStockFor(3))
	assert.False(t, managed.HasStockFor(4))

	assert.True(t, Product{ManageStock: false}.HasStockFor(100))
	assert.Equal(t, int64(0), Product{}.CurrentStock())
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusOnHold.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, OrderStatusRefunded.Terminal())
	assert.False(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Restocks())
	assert.False(t, OrderStatusFailed.Restocks())
}
