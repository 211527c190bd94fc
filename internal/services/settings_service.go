// Package services – SettingsService
//
// This file implements the admin view of the per-service integration
// switches. Names are validated against the settings keys before any query.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// SettingsService lists, reads and updates integration settings rows.
type SettingsService struct {
	DB *gorm.DB
}

// NewSettingsService constructs a SettingsService over db.
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// SettingsPatch lists the settings fields an update may change. Nil fields
// are left alone; a non-nil Configuration replaces the stored one.
type SettingsPatch struct {
	IsEnabled     *bool
	IsMockMode    *bool
	Configuration domain.JSONMap
}

func (s *SettingsService) tracer() trace.Tracer { return otel.Tracer("services/SettingsService") }

// ParseSettingsKey validates name as a service that may own a settings row.
func ParseSettingsKey(name string) (domain.Service, error) {
	svc, err := domain.ParseService(name)
	if err != nil || !svc.IsSettingsKey() {
		return "", ErrInvalidService
	}
	return svc, nil
}

// List returns every settings row ordered by service name.
func (s *SettingsService) List(ctx context.Context) ([]domain.IntegrationSettings, error) {
	ctx, span := s.tracer().Start(ctx, "List")
	defer span.End()
	return repo.ListSettings(ctx, s.DB)
}

// Get returns the row of name.
//
// Errors: ErrInvalidService, ErrSettingNotFound, or the DB error.
func (s *SettingsService) Get(ctx context.Context, name string) (*domain.IntegrationSettings, error) {
	ctx, span := s.tracer().Start(ctx, "Get", trace.WithAttributes(attribute.String("service", name)))
	defer span.End()

	svc, err := ParseSettingsKey(name)
	if err != nil {
		return nil, err
	}
	row, err := repo.GetSettings(ctx, s.DB, string(svc))
	if err != nil {
		return nil, notFound(err, ErrSettingNotFound)
	}
	return row, nil
}

// Update applies patch to the row of name and returns the stored row.
// Dispatch reads settings on every event, so changes apply to the next one.
func (s *SettingsService) Update(ctx context.Context, name string, patch SettingsPatch) (*domain.IntegrationSettings, error) {
	ctx, span := s.tracer().Start(ctx, "Update", trace.WithAttributes(attribute.String("service", name)))
	defer span.End()

	svc, err := ParseSettingsKey(name)
	if err != nil {
		return nil, err
	}
	var out *domain.IntegrationSettings
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := repo.GetSettings(ctx, tx, string(svc))
		if err != nil {
			return notFound(err, ErrSettingNotFound)
		}
		if patch.IsEnabled != nil {
			row.IsEnabled = *patch.IsEnabled
		}
		if patch.IsMockMode != nil {
			row.IsMockMode = *patch.IsMockMode
		}
		if patch.Configuration != nil {
			row.Configuration = patch.Configuration
		}
		row.UpdatedAt = time.Now().UTC()
		if err := repo.UpdateSettings(ctx, tx, row); err != nil {
			return notFound(err, ErrSettingNotFound)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("integration", out.ServiceName).
		Bool("enabled", out.IsEnabled).
		Bool("mock_mode", out.IsMockMode).
		Msg("integration settings updated")
	return out, nil
}

// SeedDefaults creates the default row of every known service that has none
// and returns how many were created.
func (s *SettingsService) SeedDefaults(ctx context.Context) (int, error) {
	ctx, span := s.tracer().Start(ctx, "SeedDefaults")
	defer span.End()

	n, err := repo.CreateDefaultSettings(ctx, s.DB)
	if err != nil {
		return n, err
	}
	if n > 0 {
		log.Info().Int("created", n).Msg("default integration settings created")
	}
	return n, nil
}
