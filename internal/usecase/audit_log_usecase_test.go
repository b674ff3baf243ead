package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase_List_InvalidLimit(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := NewAuditLogUsecase(audits)

	_, err := uc.List(context.Background(), repo.AuditLogListFilter{Limit: 0})

	assertHTTPError(t, err, http.StatusBadRequest, CodeValidation)
	audits.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAuditLogUsecase_List_InvalidFilters(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		f    repo.AuditLogListFilter
		msg  string
	}{
		{"negative offset", repo.AuditLogListFilter{Limit: 10, Offset: -1}, "invalid offset"},
		{"unknown action", repo.AuditLogListFilter{Limit: 10, Action: "DROP_TABLE"}, "invalid action"},
		{"unknown resource", repo.AuditLogListFilter{Limit: 10, ResourceType: "cart"}, "invalid resourceType"},
		{"from after to", repo.AuditLogListFilter{Limit: 10, From: &from, To: &to}, "from must be <= to"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewAuditLogUsecase(new(AuditRepoMock))
			_, err := uc.List(context.Background(), tc.f)
			assertErrContains(t, err, tc.msg)
		})
	}
}

func TestAuditLogUsecase_List_OK(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := NewAuditLogUsecase(audits)

	f := repo.AuditLogListFilter{
		ActorUserID:  int64Ptr(1),
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		Limit:        20,
		Offset:       20,
	}
	audits.On("List", mock.Anything, f).Return([]model.AuditLog{
		{ID: 9, ActorUserID: 1, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: 500},
	}, int64(21), nil).Once()

	out, err := uc.List(context.Background(), f)

	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(21), out.Total)
	assert.Equal(t, 20, out.Limit)
	assert.Equal(t, 20, out.Offset)
	audits.AssertExpectations(t)
}

func TestAuditLogUsecase_List_RepoErrorIsInternal(t *testing.T) {
	audits := new(AuditRepoMock)
	uc := NewAuditLogUsecase(audits)
	audits.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))

	_, err := uc.List(context.Background(), repo.AuditLogListFilter{Limit: 50})

	assertHTTPError(t, err, http.StatusInternalServerError, CodeInternal)
}
