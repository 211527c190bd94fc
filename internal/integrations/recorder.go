package integrations

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// Recorder writes integration log rows. A failed insert is logged and
// counted, never returned: recording must not break the dispatch it
// describes.
type Recorder struct {
	DB *gorm.DB
}

// Record inserts entry, defaulting Status to success.
func (r *Recorder) Record(ctx context.Context, entry *domain.IntegrationLog) {
	if entry.Status == "" {
		entry.Status = domain.StatusSuccess
	}
	dispatchTotal.WithLabelValues(string(entry.Service), string(entry.EventType), string(entry.Status)).Inc()

	if err := repo.CreateIntegrationLog(ctx, r.DB, entry); err != nil {
		logWriteFailures.Inc()
		log.Error().
			Err(err).
			Str("integration", string(entry.Service)).
			Str("event_type", string(entry.EventType)).
			Msg("failed to record integration log")
	}
}
