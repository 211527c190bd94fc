package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// CreateComment inserts c without touching its preloaded Task.
func CreateComment(ctx context.Context, db *gorm.DB, c *domain.TaskComment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// ListComments returns the comments of taskID, oldest first.
func ListComments(ctx context.Context, db *gorm.DB, taskID uint) ([]domain.TaskComment, error) {
	var out []domain.TaskComment
	err := db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("timestamp asc, id asc").
		Find(&out).Error
	return out, err
}
