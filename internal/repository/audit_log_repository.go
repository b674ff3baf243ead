package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// 管理画面の監査ログ検索条件（空は絞り込まない）
type AuditLogListFilter struct {
	ActorUserID  *int64
	Action       model.AuditAction
	ResourceType model.AuditResourceType
	ResourceID   *int64
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error

	// 新しい順。件数は絞り込み後の総数
	List(ctx context.Context, f AuditLogListFilter) ([]model.AuditLog, int64, error)
}
