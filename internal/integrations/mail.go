package integrations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// MailService sends task notifications by e-mail.
type MailService interface {
	SendTaskAssignment(ctx context.Context, task *domain.Task, assignee string) (Result, error)
	SendStatusChange(ctx context.Context, task *domain.Task, oldStatus, newStatus string) (Result, error)
	SendCommentNotification(ctx context.Context, comment *domain.TaskComment) (Result, error)
	SendOverdueReminder(ctx context.Context, task *domain.Task) (Result, error)
}

// MockMailService logs the mail it would send and reports it as sent.
type MockMailService struct {
	Now func() time.Time
}

// NewMockMailService returns a MockMailService using the wall clock.
func NewMockMailService() *MockMailService {
	return &MockMailService{Now: time.Now}
}

func (s *MockMailService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *MockMailService) sent(to, subject string, taskID uint) Result {
	return Result{
		Status:    "sent",
		Service:   mailProviderTag,
		Timestamp: s.now(),
		To:        to,
		Subject:   subject,
		TaskID:    idPtr(taskID),
	}
}

// SendTaskAssignment notifies assignee that task was assigned to them.
func (s *MockMailService) SendTaskAssignment(ctx context.Context, task *domain.Task, assignee string) (Result, error) {
	if task == nil || task.Project == nil {
		return Result{}, fmt.Errorf("send task assignment: %w", ErrMissingEntity)
	}
	r := s.sent(assignee, "Task Assigned: "+task.Title, task.ID)
	r.Project = task.Project.Name

	log.Info().
		Str("integration", string(domain.ServiceMockMail)).
		Str("event_type", string(domain.EventTaskAssigned)).
		Uint("task_id", task.ID).
		Str("to", assignee).
		Msg("mock mail sent")
	return r, nil
}

// SendStatusChange notifies the assignee, or the project team, of a status
// transition.
func (s *MockMailService) SendStatusChange(ctx context.Context, task *domain.Task, oldStatus, newStatus string) (Result, error) {
	if task == nil {
		return Result{}, fmt.Errorf("send status change: %w", ErrMissingEntity)
	}
	to := recipientOr(task.AssigneeEmail, FallbackTeamRecipient)
	r := s.sent(to, "Task Update: "+task.Title, task.ID)
	r.OldStatus = oldStatus
	r.NewStatus = newStatus

	log.Info().
		Str("integration", string(domain.ServiceMockMail)).
		Str("event_type", string(domain.EventTaskStatusChanged)).
		Uint("task_id", task.ID).
		Str("old_status", oldStatus).
		Str("new_status", newStatus).
		Msg("mock mail sent")
	return r, nil
}

// SendCommentNotification tells the assignee, or the project team, about a
// new comment. The comment's Task must be loaded.
func (s *MockMailService) SendCommentNotification(ctx context.Context, comment *domain.TaskComment) (Result, error) {
	if comment == nil || comment.Task == nil {
		return Result{}, fmt.Errorf("send comment notification: %w", ErrMissingEntity)
	}
	task := comment.Task
	r := s.sent(recipientOr(task.AssigneeEmail, FallbackTeamRecipient), "New Comment: "+task.Title, task.ID)
	r.CommentAuthor = comment.AuthorEmail

	log.Info().
		Str("integration", string(domain.ServiceMockMail)).
		Str("event_type", string(domain.EventCommentAdded)).
		Uint("task_id", task.ID).
		Str("author", comment.AuthorEmail).
		Msg("mock mail sent")
	return r, nil
}

// SendOverdueReminder warns the assignee, or the project manager, that task
// is past its due date.
func (s *MockMailService) SendOverdueReminder(ctx context.Context, task *domain.Task) (Result, error) {
	if task == nil {
		return Result{}, fmt.Errorf("send overdue reminder: %w", ErrMissingEntity)
	}
	r := s.sent(recipientOr(task.AssigneeEmail, FallbackManagerRecipient), "OVERDUE: "+task.Title, task.ID)
	r.DueDate = task.DueDate
	r.withDueDate = true

	log.Warn().
		Str("integration", string(domain.ServiceMockMail)).
		Str("event_type", string(domain.EventOverdueReminder)).
		Uint("task_id", task.ID).
		Msg("mock overdue reminder sent")
	return r, nil
}

func recipientOr(addr, fallback string) string {
	if addr == "" {
		return fallback
	}
	return addr
}
