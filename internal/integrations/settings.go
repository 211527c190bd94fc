package integrations

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// SettingsReader answers the two per-service questions the trigger asks
// before dispatching. Unknown services read as disabled and in mock mode.
type SettingsReader interface {
	IsServiceEnabled(ctx context.Context, service domain.Service) bool
	IsMockMode(ctx context.Context, service domain.Service) bool
}

// DBSettings reads the integration_settings table on every call.
type DBSettings struct {
	DB *gorm.DB
}

// IsServiceEnabled implements SettingsReader. Database errors are logged and
// read as disabled.
func (s DBSettings) IsServiceEnabled(ctx context.Context, service domain.Service) bool {
	ok, err := repo.IsServiceEnabled(ctx, s.DB, string(service))
	if err != nil {
		log.Error().Err(err).Str("integration", string(service)).Msg("settings lookup failed")
	}
	return ok
}

// IsMockMode implements SettingsReader. Database errors are logged and read
// as mock mode.
func (s DBSettings) IsMockMode(ctx context.Context, service domain.Service) bool {
	ok, err := repo.IsMockMode(ctx, s.DB, string(service))
	if err != nil {
		log.Error().Err(err).Str("integration", string(service)).Msg("settings lookup failed")
	}
	return ok
}

// StaticSettings is an in-memory SettingsReader. The zero value has every
// service disabled.
type StaticSettings struct {
	mu   sync.RWMutex
	rows map[domain.Service]domain.IntegrationSettings
}

// NewStaticSettings returns a snapshot holding rows.
func NewStaticSettings(rows ...domain.IntegrationSettings) *StaticSettings {
	s := &StaticSettings{}
	for _, r := range rows {
		s.Set(r)
	}
	return s
}

// DefaultStaticSettings returns the seeded defaults: both mock services
// enabled in mock mode, the live services disabled.
func DefaultStaticSettings() *StaticSettings {
	return NewStaticSettings(
		domain.IntegrationSettings{ServiceName: string(domain.ServiceMockMail), IsEnabled: true, IsMockMode: true},
		domain.IntegrationSettings{ServiceName: string(domain.ServiceMockChat), IsEnabled: true, IsMockMode: true},
		domain.IntegrationSettings{ServiceName: string(domain.ServiceMail)},
		domain.IntegrationSettings{ServiceName: string(domain.ServiceChat)},
	)
}

// Set stores or replaces the row for r.ServiceName.
func (s *StaticSettings) Set(r domain.IntegrationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = make(map[domain.Service]domain.IntegrationSettings)
	}
	s.rows[domain.Service(r.ServiceName)] = r
}

// SetEnabled toggles IsEnabled for service, creating a mock-mode row if needed.
func (s *StaticSettings) SetEnabled(service domain.Service, enabled bool) {
	s.mu.RLock()
	r, ok := s.rows[service]
	s.mu.RUnlock()
	if !ok {
		r = domain.NewIntegrationSettings(string(service))
	}
	r.IsEnabled = enabled
	s.Set(r)
}

// IsServiceEnabled implements SettingsReader.
func (s *StaticSettings) IsServiceEnabled(_ context.Context, service domain.Service) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[service]
	return ok && r.IsEnabled
}

// IsMockMode implements SettingsReader.
func (s *StaticSettings) IsMockMode(_ context.Context, service domain.Service) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[service]
	return !ok || r.IsMockMode
}
