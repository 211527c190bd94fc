package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// defaultSettings is seeded by CreateDefaultSettings. The mock channels start
// enabled in mock mode; the live channels start disabled.
var defaultSettings = []domain.IntegrationSettings{
	{ServiceName: string(domain.ServiceMockMail), IsEnabled: true, IsMockMode: true},
	{ServiceName: string(domain.ServiceMockChat), IsEnabled: true, IsMockMode: true},
	{ServiceName: string(domain.ServiceMail), IsEnabled: false, IsMockMode: false},
	{ServiceName: string(domain.ServiceChat), IsEnabled: false, IsMockMode: false},
}

// GetSettings returns the row for name or ErrNotFound.
func GetSettings(ctx context.Context, db *gorm.DB, name string) (*domain.IntegrationSettings, error) {
	var s domain.IntegrationSettings
	err := db.WithContext(ctx).
		Where("service_name = ?", name).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSettings returns every settings row ordered by service name.
func ListSettings(ctx context.Context, db *gorm.DB) ([]domain.IntegrationSettings, error) {
	var out []domain.IntegrationSettings
	err := db.WithContext(ctx).Order("service_name asc").Find(&out).Error
	return out, err
}

// UpdateSettings persists the switches and configuration of s, including
// explicit false values.
func UpdateSettings(ctx context.Context, db *gorm.DB, s *domain.IntegrationSettings) error {
	res := db.WithContext(ctx).
		Model(s).
		Select("IsEnabled", "IsMockMode", "Configuration", "UpdatedAt").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsServiceEnabled reports whether name has a row with IsEnabled set. A
// missing row reads as disabled. Query errors also read as disabled and are
// returned for logging.
func IsServiceEnabled(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	s, err := GetSettings(ctx, db, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.IsEnabled, nil
}

// IsMockMode reports whether name runs in mock mode. A missing row reads as
// mock, the opposite default of IsServiceEnabled.
func IsMockMode(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	s, err := GetSettings(ctx, db, name)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return s.IsMockMode, nil
}

// CreateDefaultSettings inserts the default row for each known service that
// has none. Existing rows are left untouched, so it is safe on every start.
// It returns the number of rows created.
func CreateDefaultSettings(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	for _, def := range defaultSettings {
		row := def
		row.Configuration = domain.JSONMap{}
		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "service_name"}}, DoNothing: true}).
			Create(&row)
		if res.Error != nil {
			return created, res.Error
		}
		created += int(res.RowsAffected)
	}
	return created, nil
}
