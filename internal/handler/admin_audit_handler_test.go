package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 受け取った条件を残すだけ
type auditStub struct {
	got  *repo.AuditLogListFilter
	logs []model.AuditLog
}

func (s *auditStub) Create(context.Context, model.AuditLog) error { return nil }

func (s *auditStub) List(_ context.Context, f repo.AuditLogListFilter) ([]model.AuditLog, int64, error) {
	s.got = &f
	return s.logs, int64(len(s.logs)), nil
}

func getAuditLogs(t *testing.T, stub *auditStub, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	NewAdminAuditHandler(usecase.NewAuditLogUsecase(stub)).RegisterRoutes(e.Group("/api/admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuditLogs_ParsesFilters(t *testing.T) {
	stub := &auditStub{logs: []model.AuditLog{{ID: 3, Action: model.AuditActionUpdateStock}}}

	rec := getAuditLogs(t, stub,
		"?actorId=7&action=UPDATE_STOCK&resourceType=product&resourceId=12&from=2026-01-01T00:00:00Z&limit=10&offset=5")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.got)
	require.NotNil(t, stub.got.ActorUserID)
	assert.Equal(t, int64(7), *stub.got.ActorUserID)
	assert.Equal(t, model.AuditActionUpdateStock, stub.got.Action)
	assert.Equal(t, model.AuditResourceProduct, stub.got.ResourceType)
	require.NotNil(t, stub.got.ResourceID)
	assert.Equal(t, int64(12), *stub.got.ResourceID)
	require.NotNil(t, stub.got.From)
	assert.Nil(t, stub.got.To)
	assert.Equal(t, 10, stub.got.Limit)
	assert.Equal(t, 5, stub.got.Offset)

	var body usecase.AuditLogListOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(1), body.Total)
	assert.Len(t, body.Items, 1)
}

func TestAdminAuditLogs_BadQuery(t *testing.T) {
	cases := []string{"?actorId=abc", "?resourceId=0", "?from=yesterday", "?action=DROP"}
	for _, q := range cases {
		t.Run(q, func(t *testing.T) {
			stub := &auditStub{}
			rec := getAuditLogs(t, stub, q)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, usecase.CodeValidation, decodeError(t, rec).Code)
			assert.Nil(t, stub.got)
		})
	}
}
