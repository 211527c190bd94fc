package repo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// LogFilter narrows integration log queries. Zero fields match everything.
// From is inclusive and To exclusive. Query matches recipient, subject or
// error message by substring, or a task/project id exactly when numeric.
type LogFilter struct {
	Service   domain.Service
	EventType domain.EventType
	Status    domain.LogStatus
	TaskID    *uint
	ProjectID *uint
	From      *time.Time
	To        *time.Time
	Query     string
}

func (f LogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Service != "" {
		q = q.Where("service = ?", f.Service)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TaskID != nil {
		q = q.Where("task_id = ?", *f.TaskID)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.UTC())
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + escapeLike(term) + "%"
		cond := "recipient LIKE ? ESCAPE '\\' OR subject LIKE ? ESCAPE '\\' OR error_message LIKE ? ESCAPE '\\'"
		args := []any{like, like, like}
		if id, err := strconv.ParseUint(term, 10, 64); err == nil {
			cond += " OR task_id = ? OR project_id = ?"
			args = append(args, id, id)
		}
		q = q.Where("("+cond+")", args...)
	}
	return q
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// CreateIntegrationLog inserts l.
func CreateIntegrationLog(ctx context.Context, db *gorm.DB, l *domain.IntegrationLog) error {
	return db.WithContext(ctx).Create(l).Error
}

// GetIntegrationLog fetches a log row by id or returns ErrNotFound.
func GetIntegrationLog(ctx context.Context, db *gorm.DB, id uint) (*domain.IntegrationLog, error) {
	var l domain.IntegrationLog
	if err := db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListIntegrationLogs returns a page of rows matching f, newest first.
func ListIntegrationLogs(ctx context.Context, db *gorm.DB, f LogFilter, offset, limit int) ([]domain.IntegrationLog, error) {
	var out []domain.IntegrationLog
	err := f.apply(db.WithContext(ctx).Model(&domain.IntegrationLog{})).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountIntegrationLogs returns the number of rows matching f.
func CountIntegrationLogs(ctx context.Context, db *gorm.DB, f LogFilter) (int64, error) {
	var n int64
	err := f.apply(db.WithContext(ctx).Model(&domain.IntegrationLog{})).Count(&n).Error
	return n, err
}

// MarkLogFailed sets status=failed and the error message, then persists.
func MarkLogFailed(ctx context.Context, db *gorm.DB, l *domain.IntegrationLog, msg string) error {
	l.Status = domain.StatusFailed
	l.ErrorMessage = msg
	return db.WithContext(ctx).
		Model(l).
		Select("Status", "ErrorMessage", "UpdatedAt").
		Updates(l).Error
}

// MarkLogSuccess sets status=success, clears the error message and persists.
// response replaces the stored response data only when it is non-empty.
func MarkLogSuccess(ctx context.Context, db *gorm.DB, l *domain.IntegrationLog, response domain.JSONMap) error {
	l.Status = domain.StatusSuccess
	l.ErrorMessage = ""
	cols := []any{"ErrorMessage", "UpdatedAt"}
	if len(response) > 0 {
		l.ResponseData = response
		cols = append(cols, "ResponseData")
	}
	return db.WithContext(ctx).
		Model(l).
		Select("Status", cols...).
		Updates(l).Error
}

// BulkUpdateLogStatus overwrites the status of every row in ids and returns
// the number of rows changed. Any status other than failed clears the error
// message. An empty id list is a no-op.
func BulkUpdateLogStatus(ctx context.Context, db *gorm.DB, ids []uint, status domain.LogStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cols := map[string]any{"status": status, "updated_at": UTCNow()}
	if status != domain.StatusFailed {
		cols["error_message"] = ""
	}
	res := db.WithContext(ctx).
		Model(&domain.IntegrationLog{}).
		Where("id IN ?", ids).
		Updates(cols)
	return res.RowsAffected, res.Error
}

// DeleteLogsOlderThan removes rows created before cutoff and returns how many
// were deleted.
func DeleteLogsOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&domain.IntegrationLog{})
	return res.RowsAffected, res.Error
}
