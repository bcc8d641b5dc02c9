package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretstore/internal/common"
	"secretstore/internal/models"
	handler "secretstore/internal/server/handler/http"
)

type fakeStatsService struct {
	SnapshotFunc func(ctx context.Context) (*models.Statistics, error)
	EventsFunc   func(ctx context.Context, identity models.Identity) ([]models.AuditEvent, error)
}

func (f *fakeStatsService) Snapshot(ctx context.Context) (*models.Statistics, error) {
	return f.SnapshotFunc(ctx)
}
func (f *fakeStatsService) Events(ctx context.Context, identity models.Identity) ([]models.AuditEvent, error) {
	return f.EventsFunc(ctx, identity)
}

func TestStatsSnapshot(t *testing.T) {
	h := &handler.StatsHandler{StatsService: &fakeStatsService{
		SnapshotFunc: func(ctx context.Context) (*models.Statistics, error) {
			return &models.Statistics{TotalActions: 4, UniqueUsers: 2, FirstActiveUser: "alice", LastActiveUser: "bob"}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.Snapshot(rec, authedRequest(http.MethodGet, "/api/statistics", nil, aliceIdent))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.Statistics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, int64(4), stats.TotalActions)
	assert.Equal(t, int64(2), stats.UniqueUsers)
	assert.Equal(t, "alice", stats.FirstActiveUser)
	assert.Equal(t, "bob", stats.LastActiveUser)
}

func TestStatsSnapshot_Unauthenticated(t *testing.T) {
	h := &handler.StatsHandler{StatsService: &fakeStatsService{}}

	rec := httptest.NewRecorder()
	h.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatsSnapshot_BackendDown(t *testing.T) {
	h := &handler.StatsHandler{StatsService: &fakeStatsService{
		SnapshotFunc: func(ctx context.Context) (*models.Statistics, error) {
			return nil, common.ErrUnavailable
		},
	}}

	rec := httptest.NewRecorder()
	h.Snapshot(rec, authedRequest(http.MethodGet, "/api/statistics", nil, aliceIdent))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var errResp common.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.True(t, errResp.Retryable)
}

func TestStatsEvents(t *testing.T) {
	tests := []struct {
		name       string
		ident      models.Identity
		eventsErr  error
		wantStatus int
	}{
		{name: "admin reads log", ident: adminIdent, wantStatus: http.StatusOK},
		{name: "regular user refused", ident: aliceIdent, eventsErr: common.ErrForbidden, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handler.StatsHandler{StatsService: &fakeStatsService{
				EventsFunc: func(ctx context.Context, identity models.Identity) ([]models.AuditEvent, error) {
					if tt.eventsErr != nil {
						return nil, tt.eventsErr
					}
					return []models.AuditEvent{{ID: 1, ActorID: "u1", Action: models.ActionLogin}}, nil
				},
			}}

			rec := httptest.NewRecorder()
			h.Events(rec, authedRequest(http.MethodGet, "/api/audit_logs", nil, tt.ident))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var events []models.AuditEvent
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
				require.Len(t, events, 1)
				assert.Equal(t, models.ActionLogin, events[0].Action)
			}
		})
	}
}
