package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/util"

	"go.uber.org/zap"
)

type AuditLogUsecase struct {
	audits repo.AuditLogRepository
}

func NewAuditLogUsecase(audits repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{audits: audits}
}

type AuditLogListOutput struct {
	Items  []model.AuditLog `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

func validAuditAction(a model.AuditAction) bool {
	switch a {
	case model.AuditActionUpdateStock, model.AuditActionUpdateOrderStatus,
		model.AuditActionCreateCoupon, model.AuditActionForceLogout:
		return true
	}
	return false
}

func validAuditResource(t model.AuditResourceType) bool {
	switch t {
	case model.AuditResourceProduct, model.AuditResourceOrder,
		model.AuditResourceCoupon, model.AuditResourceUser:
		return true
	}
	return false
}

// 管理者操作の履歴（新しい順）
func (u *AuditLogUsecase) List(ctx context.Context, f repo.AuditLogListFilter) (AuditLogListOutput, error) {
	if f.Limit < 1 || f.Limit > 200 {
		return AuditLogListOutput{}, badRequest(CodeValidation, "invalid limit")
	}
	if f.Offset < 0 {
		return AuditLogListOutput{}, badRequest(CodeValidation, "invalid offset")
	}
	if f.Action != "" && !validAuditAction(f.Action) {
		return AuditLogListOutput{}, badRequest(CodeValidation, "invalid action")
	}
	if f.ResourceType != "" && !validAuditResource(f.ResourceType) {
		return AuditLogListOutput{}, badRequest(CodeValidation, "invalid resourceType")
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return AuditLogListOutput{}, badRequest(CodeValidation, "from must be <= to")
	}

	logs, total, err := u.audits.List(ctx, f)
	if err != nil {
		util.GetLogger().Error("list audit logs", zap.Error(err))
		return AuditLogListOutput{}, internalError()
	}
	return AuditLogListOutput{Items: logs, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}
