package service

import (
	"context"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

// AuditRepository defines the read side of the audit log needed by the
// StatsService.
type AuditRepository interface {
	// Snapshot computes the aggregate statistics at a consistent point
	// in time.
	Snapshot(ctx context.Context) (*models.Statistics, error)
	// List returns the full audit log in insertion order.
	List(ctx context.Context) ([]models.AuditEvent, error)
}

// StatsService derives usage statistics from the audit log.
type StatsService struct {
	audit AuditRepository
}

// NewStatsService constructs a StatsService over the given audit
// repository.
func NewStatsService(audit AuditRepository) *StatsService {
	return &StatsService{audit: audit}
}

// Snapshot returns the current aggregate statistics. Any authenticated
// identity may call it; the numbers expose no secret material.
func (s *StatsService) Snapshot(ctx context.Context) (*models.Statistics, error) {
	return s.audit.Snapshot(ctx)
}

// Events returns the raw audit log, admin-only.
func (s *StatsService) Events(ctx context.Context, identity models.Identity) ([]models.AuditEvent, error) {
	if !identity.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.audit.List(ctx)
}
