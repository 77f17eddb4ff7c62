package audit

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/keyxmakerx/examboard/internal/apperror"
)

// perPage is the number of audit entries per page.
const perPage = 50

// maxPage keeps the listing offset inside a signed 32-bit OFFSET.
const maxPage = math.MaxInt32 / perPage

// AuditService handles business logic for the audit log.
type AuditService interface {
	// Log validates and persists an entry.
	Log(ctx context.Context, entry *Entry) error

	// Record is the fire-and-forget form of Log used by other plugins:
	// failures are logged and never reach the caller, so an audit outage
	// cannot block the primary write.
	Record(ctx context.Context, entry *Entry)

	// List returns a page (1-indexed) of entries plus the total count.
	List(ctx context.Context, f Filter, page int) ([]Entry, int, error)
}

type auditService struct {
	repo AuditRepository
}

// NewAuditService creates a new audit service with the given repository.
func NewAuditService(repo AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Log(ctx context.Context, entry *Entry) error {
	if entry.Action == "" {
		return apperror.NewValidation("action is required for audit entry", "action")
	}
	if entry.EntityType == "" {
		return apperror.NewValidation("entity type is required for audit entry", "entity_type")
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		return apperror.NewInternal(fmt.Errorf("writing audit entry: %w", err))
	}
	return nil
}

func (s *auditService) Record(ctx context.Context, entry *Entry) {
	if err := s.Log(ctx, entry); err != nil {
		slog.Warn("failed to write audit entry",
			slog.String("action", entry.Action),
			slog.String("entity_type", entry.EntityType),
			slog.Int64("entity_id", entry.EntityID),
			slog.Any("error", err),
		)
	}
}

// List clamps page into [1, maxPage].
func (s *auditService) List(ctx context.Context, f Filter, page int) ([]Entry, int, error) {
	page = min(max(page, 1), maxPage)
	entries, total, err := s.repo.List(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("listing audit entries: %w", err))
	}
	return entries, total, nil
}
