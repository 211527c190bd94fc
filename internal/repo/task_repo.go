package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// CreateTask inserts t.
func CreateTask(ctx context.Context, db *gorm.DB, t *domain.Task) error {
	return db.WithContext(ctx).Create(t).Error
}

// GetTask fetches a task with Project and Project.Organization preloaded,
// which every notification formatter needs.
func GetTask(ctx context.Context, db *gorm.DB, id uint) (*domain.Task, error) {
	var t domain.Task
	err := db.WithContext(ctx).
		Preload("Project.Organization").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FirstTask returns the lowest-id task with associations, or ErrNotFound.
func FirstTask(ctx context.Context, db *gorm.DB) (*domain.Task, error) {
	var t domain.Task
	err := db.WithContext(ctx).
		Preload("Project.Organization").
		Order("id asc").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTask persists the mutable task columns. Omitting associations keeps
// GORM from upserting the preloaded project and organization.
func SaveTask(ctx context.Context, db *gorm.DB, t *domain.Task) error {
	res := db.WithContext(ctx).
		Model(t).
		Select("Title", "Description", "Status", "AssigneeEmail", "DueDate", "UpdatedAt").
		Omit(clause.Associations).
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOverdueTasks returns tasks whose due date is before now and whose
// status is not DONE, oldest due date first.
func ListOverdueTasks(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.Task, error) {
	var out []domain.Task
	err := db.WithContext(ctx).
		Preload("Project.Organization").
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now.UTC(), domain.TaskDone).
		Order("due_date asc, id asc").
		Find(&out).Error
	return out, err
}

// CountOrgTasks returns the total number of tasks across orgID's projects and
// how many of them moved to DONE at or after since.
func CountOrgTasks(ctx context.Context, db *gorm.DB, orgID uint, since time.Time) (total, completed int64, err error) {
	base := func() *gorm.DB {
		return db.WithContext(ctx).
			Model(&domain.Task{}).
			Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("projects.organization_id = ?", orgID)
	}
	if err = base().Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = base().
		Where("tasks.status = ? AND tasks.updated_at >= ?", domain.TaskDone, since.UTC()).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}
