package http

import (
	"context"
	"net/http"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

// StatsService defines the interface for statistics operations required by
// the StatsHandler.
type StatsService interface {
	Snapshot(ctx context.Context) (*models.Statistics, error)
	Events(ctx context.Context, identity models.Identity) ([]models.AuditEvent, error)
}

// StatsHandler handles HTTP requests for usage statistics and the audit log.
type StatsHandler struct {
	StatsService StatsService
}

// Snapshot handles GET /api/statistics. Available to any authenticated
// caller.
func (h *StatsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	stats, err := h.StatsService.Snapshot(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

// Events handles GET /api/audit_logs, admin-only.
func (h *StatsHandler) Events(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	events, err := h.StatsService.Events(r.Context(), ident)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	common.RespondWithJSON(w, http.StatusOK, events)
}
