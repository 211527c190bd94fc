// Package services – IntegrationService
//
// This file exposes the on-demand integration operations to the HTTP and
// CLI layers: the self-test, the overdue reminder sweep, daily digests and
// project updates. It validates input and maps repository misses to the
// service sentinels; dispatch itself lives in the integrations package.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// IntegrationService runs on-demand integration operations.
type IntegrationService struct {
	DB      *gorm.DB
	Trigger *integrations.Trigger

	// Now is the clock used for reminders and digests. Defaults to time.Now.
	Now func() time.Time
}

// NewIntegrationService constructs an IntegrationService over trigger.
func NewIntegrationService(db *gorm.DB, trigger *integrations.Trigger) *IntegrationService {
	return &IntegrationService{DB: db, Trigger: trigger}
}

func (s *IntegrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// SelfTest runs the integration self-test for the raw scope ("mail",
// "chat", "all" or empty).
func (s *IntegrationService) SelfTest(ctx context.Context, rawScope string) (integrations.SelfTestReport, error) {
	scope, err := integrations.ParseSelfTestScope(rawScope)
	if err != nil {
		return integrations.SelfTestReport{}, err
	}
	return integrations.SelfTest(ctx, s.DB, s.Trigger.Orchestrator, scope)
}

// SendOverdueReminders mails every overdue task's assignee.
func (s *IntegrationService) SendOverdueReminders(ctx context.Context) (integrations.ReminderReport, error) {
	return s.Trigger.SendOverdueReminders(ctx, s.now())
}

// PostDailyDigest posts today's digest of orgID.
//
// Errors: ErrOrganizationNotFound, integrations.ErrServiceDisabled, or the
// dispatch error.
func (s *IntegrationService) PostDailyDigest(ctx context.Context, orgID uint) (integrations.Result, error) {
	res, err := s.Trigger.PostDailyDigest(ctx, orgID, s.now())
	if err != nil && errors.Is(err, repo.ErrNotFound) {
		return res, ErrOrganizationNotFound
	}
	return res, err
}

// PostProjectUpdate posts message to the channel of projectID.
//
// Errors: ErrEmptyMessage, ErrProjectNotFound, integrations.ErrServiceDisabled,
// or the dispatch error.
func (s *IntegrationService) PostProjectUpdate(ctx context.Context, projectID uint, message string) (integrations.Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return integrations.Result{}, ErrEmptyMessage
	}
	res, err := s.Trigger.PostProjectUpdate(ctx, projectID, message)
	if err != nil && errors.Is(err, repo.ErrNotFound) {
		return res, ErrProjectNotFound
	}
	return res, err
}
