package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// 管理ユーザーの保存・取得を約束
type UserRepository interface {
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	//トークンのバージョンを＋１して新しい値を返す
	IncrementTokenVersion(ctx context.Context, userID int64) (int, error)
}
