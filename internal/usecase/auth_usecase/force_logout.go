package auth

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type ForceLogoutOutput struct {
	UserID          int64 `json:"user_id"`
	NewTokenVersion int   `json:"new_token_version"`
}

// token_versionを上げて、発行済みの管理者トークンを全部無効にする
type ForceLogoutUsecase struct {
	users  repository.UserRepository
	audits repository.AuditLogRepository
	clock  Clock
}

func NewForceLogoutUsecase(users repository.UserRepository, audits repository.AuditLogRepository, clock Clock) *ForceLogoutUsecase {
	return &ForceLogoutUsecase{users: users, audits: audits, clock: clock}
}

func (u *ForceLogoutUsecase) Execute(ctx context.Context, actorUserID int64, targetUserID int64) (ForceLogoutOutput, error) {
	if targetUserID <= 0 {
		return ForceLogoutOutput{}, ErrUserNotFound
	}

	tv, err := u.users.IncrementTokenVersion(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ForceLogoutOutput{}, ErrUserNotFound
		}
		return ForceLogoutOutput{}, err
	}

	if err := u.audits.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionForceLogout,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   fmt.Sprintf(`{"token_version":%d}`, tv-1),
		AfterJSON:    fmt.Sprintf(`{"token_version":%d}`, tv),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return ForceLogoutOutput{}, err
	}

	return ForceLogoutOutput{UserID: targetUserID, NewTokenVersion: tv}, nil
}
