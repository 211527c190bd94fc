package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// CreateProject inserts p. A missing organization surfaces as the raw
// foreign-key error.
func CreateProject(ctx context.Context, db *gorm.DB, p *domain.Project) error {
	return db.WithContext(ctx).Create(p).Error
}

// GetProject fetches a project with its Organization preloaded.
func GetProject(ctx context.Context, db *gorm.DB, id uint) (*domain.Project, error) {
	var p domain.Project
	err := db.WithContext(ctx).
		Preload("Organization").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
