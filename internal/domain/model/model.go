package model

// 自動マイグレーション対象
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Customer{},
		&Product{},
		&Coupon{},
		&Order{},
		&OrderItem{},
		&OrderCoupon{},
		&OrderNote{},
		&InventoryLog{},
		&AuditLog{},
	}
}
