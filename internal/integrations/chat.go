package integrations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// ChatService posts team messages to the organization's channel.
type ChatService interface {
	PostTaskAssignment(ctx context.Context, task *domain.Task, assignee string) (Result, error)
	PostTaskCompletion(ctx context.Context, task *domain.Task) (Result, error)
	PostProjectUpdate(ctx context.Context, project *domain.Project, message string) (Result, error)
	PostDailyDigest(ctx context.Context, org *domain.Organization, taskCount, completedCount int64) (Result, error)
}

// MockChatService logs the message it would post and reports it as posted.
// The channel is the organization slug prefixed with '#'.
type MockChatService struct {
	Now func() time.Time
}

// NewMockChatService returns a MockChatService using the wall clock.
func NewMockChatService() *MockChatService {
	return &MockChatService{Now: time.Now}
}

func (s *MockChatService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *MockChatService) posted(org *domain.Organization, message string) Result {
	return Result{
		Status:    "posted",
		Service:   chatProviderTag,
		Timestamp: s.now(),
		Channel:   ChannelName(org),
		Message:   message,
	}
}

// ChannelName returns the chat channel of org, "#<slug>".
func ChannelName(org *domain.Organization) string {
	if org == nil {
		return ""
	}
	return "#" + org.Slug
}

// PostTaskAssignment announces that task was assigned to assignee.
func (s *MockChatService) PostTaskAssignment(ctx context.Context, task *domain.Task, assignee string) (Result, error) {
	org := task.Organization()
	if org == nil {
		return Result{}, fmt.Errorf("post task assignment: %w", ErrMissingEntity)
	}
	r := s.posted(org, fmt.Sprintf("📋 Task assigned: *%s* → %s", task.Title, assignee))
	r.TaskID = idPtr(task.ID)

	log.Info().
		Str("integration", string(domain.ServiceMockChat)).
		Str("event_type", string(domain.EventTaskAssigned)).
		Str("channel", r.Channel).
		Uint("task_id", task.ID).
		Msg("mock chat message posted")
	return r, nil
}

// PostTaskCompletion announces that task is done, crediting the assignee.
func (s *MockChatService) PostTaskCompletion(ctx context.Context, task *domain.Task) (Result, error) {
	org := task.Organization()
	if org == nil {
		return Result{}, fmt.Errorf("post task completion: %w", ErrMissingEntity)
	}
	who := recipientOr(task.AssigneeEmail, fallbackCompletedBy)
	r := s.posted(org, fmt.Sprintf("✅ Task completed: *%s* by %s", task.Title, who))
	r.TaskID = idPtr(task.ID)
	r.Assignee = who

	log.Info().
		Str("integration", string(domain.ServiceMockChat)).
		Str("event_type", string(domain.EventTaskCompleted)).
		Str("channel", r.Channel).
		Uint("task_id", task.ID).
		Msg("mock chat message posted")
	return r, nil
}

// PostProjectUpdate posts a free-form update about project.
func (s *MockChatService) PostProjectUpdate(ctx context.Context, project *domain.Project, message string) (Result, error) {
	if project == nil || project.Organization == nil {
		return Result{}, fmt.Errorf("post project update: %w", ErrMissingEntity)
	}
	r := s.posted(project.Organization, "📊 Project update: "+message)
	r.ProjectID = idPtr(project.ID)

	log.Info().
		Str("integration", string(domain.ServiceMockChat)).
		Str("event_type", string(domain.EventProjectUpdate)).
		Str("channel", r.Channel).
		Uint("project_id", project.ID).
		Msg("mock chat message posted")
	return r, nil
}

// PostDailyDigest posts how many of the organization's tasks were completed
// today.
func (s *MockChatService) PostDailyDigest(ctx context.Context, org *domain.Organization, taskCount, completedCount int64) (Result, error) {
	if org == nil {
		return Result{}, fmt.Errorf("post daily digest: %w", ErrMissingEntity)
	}
	r := s.posted(org, fmt.Sprintf("📊 Daily digest: %d/%d tasks completed today", completedCount, taskCount))
	r.OrganizationID = idPtr(org.ID)

	log.Info().
		Str("integration", string(domain.ServiceMockChat)).
		Str("event_type", string(domain.EventDailyDigest)).
		Str("channel", r.Channel).
		Uint("organization_id", org.ID).
		Msg("mock chat message posted")
	return r, nil
}
