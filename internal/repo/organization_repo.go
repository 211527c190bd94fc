package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// CreateOrganization inserts o. The slug is derived from the name by the
// model hook when empty; a clash on the slug yields ErrDuplicate.
func CreateOrganization(ctx context.Context, db *gorm.DB, o *domain.Organization) error {
	if err := db.WithContext(ctx).Create(o).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetOrganization fetches an organization by id or returns ErrNotFound.
func GetOrganization(ctx context.Context, db *gorm.DB, id uint) (*domain.Organization, error) {
	var o domain.Organization
	if err := db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FirstOrganization returns the lowest-id organization, or ErrNotFound when
// none exist.
func FirstOrganization(ctx context.Context, db *gorm.DB) (*domain.Organization, error) {
	var o domain.Organization
	if err := db.WithContext(ctx).Order("id asc").First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrganizations returns all organizations ordered by id.
func ListOrganizations(ctx context.Context, db *gorm.DB) ([]domain.Organization, error) {
	var out []domain.Organization
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}
