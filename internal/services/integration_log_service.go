// Package services – IntegrationLogService
//
// This file implements the admin operations over the integration log:
// filtered listing with pagination, conditional-request stats, manual
// success/failure marking, bulk status overrides and retention purges.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/utils"
)

// IntegrationLogService reads and curates integration log rows.
type IntegrationLogService struct {
	DB *gorm.DB

	// RetentionDays is used by Purge when the caller passes 0.
	RetentionDays int

	// Now is the clock used for purge cutoffs. Defaults to time.Now.
	Now func() time.Time
}

// NewIntegrationLogService constructs an IntegrationLogService with the
// given default retention in days.
func NewIntegrationLogService(db *gorm.DB, retentionDays int) *IntegrationLogService {
	return &IntegrationLogService{DB: db, RetentionDays: retentionDays}
}

func (s *IntegrationLogService) tracer() trace.Tracer {
	return otel.Tracer("services/IntegrationLogService")
}

func (s *IntegrationLogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// ListPage returns one page of rows matching f, newest first, and the total
// number of matching rows. page and pageSize are expected to be clamped.
func (s *IntegrationLogService) ListPage(ctx context.Context, f repo.LogFilter, page, pageSize int) ([]domain.IntegrationLog, int64, error) {
	ctx, span := s.tracer().Start(ctx, "ListPage",
		trace.WithAttributes(attribute.Int("page", page), attribute.Int("page_size", pageSize)))
	defer span.End()

	total, err := repo.CountIntegrationLogs(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListIntegrationLogs(ctx, s.DB, f, utils.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Stats returns the number of rows matching f and their latest update time.
func (s *IntegrationLogService) Stats(ctx context.Context, f repo.LogFilter) (int64, *time.Time, error) {
	ctx, span := s.tracer().Start(ctx, "Stats")
	defer span.End()
	return repo.LogsStats(ctx, s.DB, f)
}

// Get returns the row with id or ErrLogNotFound.
func (s *IntegrationLogService) Get(ctx context.Context, id uint) (*domain.IntegrationLog, error) {
	ctx, span := s.tracer().Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("log.id", int64(id))))
	defer span.End()

	l, err := repo.GetIntegrationLog(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrLogNotFound)
	}
	return l, nil
}

// MarkSuccess flips row id to success. A non-empty response replaces the
// stored response data.
func (s *IntegrationLogService) MarkSuccess(ctx context.Context, id uint, response domain.JSONMap) (*domain.IntegrationLog, error) {
	ctx, span := s.tracer().Start(ctx, "MarkSuccess",
		trace.WithAttributes(attribute.Int64("log.id", int64(id))))
	defer span.End()

	var out *domain.IntegrationLog
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := repo.GetIntegrationLog(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrLogNotFound)
		}
		if err := repo.MarkLogSuccess(ctx, tx, l, response); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// MarkFailed flips row id to failed with msg as the error message.
//
// Errors: ErrEmptyErrorMessage, ErrLogNotFound, or the DB error.
func (s *IntegrationLogService) MarkFailed(ctx context.Context, id uint, msg string) (*domain.IntegrationLog, error) {
	ctx, span := s.tracer().Start(ctx, "MarkFailed",
		trace.WithAttributes(attribute.Int64("log.id", int64(id))))
	defer span.End()

	msg = strings.TrimSpace(msg)
	if msg == "" {
		return nil, ErrEmptyErrorMessage
	}
	var out *domain.IntegrationLog
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := repo.GetIntegrationLog(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrLogNotFound)
		}
		if err := repo.MarkLogFailed(ctx, tx, l, msg); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// BulkUpdateStatus overwrites the status of every row in ids and returns the
// number of rows changed. Unknown ids are ignored.
func (s *IntegrationLogService) BulkUpdateStatus(ctx context.Context, ids []uint, status domain.LogStatus) (int64, error) {
	ctx, span := s.tracer().Start(ctx, "BulkUpdateStatus",
		trace.WithAttributes(attribute.Int("ids", len(ids)), attribute.String("status", string(status))))
	defer span.End()

	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	if _, err := domain.ParseLogStatus(string(status)); err != nil {
		return 0, ErrInvalidStatus
	}
	n, err := repo.BulkUpdateLogStatus(ctx, s.DB, ids, status)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("updated", n).Str("status", string(status)).Msg("integration logs bulk status")
	return n, nil
}

// Purge deletes rows older than olderThanDays days. Zero means the
// configured retention.
//
// Errors: ErrInvalidRetention for a negative age or an unset retention.
func (s *IntegrationLogService) Purge(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays == 0 {
		olderThanDays = s.RetentionDays
	}
	ctx, span := s.tracer().Start(ctx, "Purge",
		trace.WithAttributes(attribute.Int("older_than_days", olderThanDays)))
	defer span.End()

	if olderThanDays < 1 {
		return 0, ErrInvalidRetention
	}
	cutoff := s.now().Add(-time.Duration(olderThanDays) * 24 * time.Hour)
	n, err := repo.DeleteLogsOlderThan(ctx, s.DB, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().
		Int64("deleted", n).
		Int("older_than_days", olderThanDays).
		Msg("integration logs purged")
	return n, nil
}
