// Package integrations reacts to task and comment changes by notifying
// external services (mail and chat) and recording every attempt in the
// integration log.
//
// The services are deterministic mocks: they log what they would send and
// return a descriptor of the delivery. The Orchestrator fans one domain event
// out to several services, and the Trigger decides which events fire, gates
// them on the service settings, and contains any failure so the originating
// mutation always succeeds.
package integrations

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// ErrMissingEntity is returned when a formatter receives a nil entity, or an
// entity without the parent it needs (a task without project, a project
// without organization).
var ErrMissingEntity = errors.New("missing entity")

// Service tags carried inside result descriptors. They name the mock
// provider, not the settings key.
const (
	mailProviderTag = "mock_email"
	chatProviderTag = "mock_slack"
)

// Fallback recipients used when a task has no assignee.
const (
	FallbackTeamRecipient    = "project-team@example.com"
	FallbackManagerRecipient = "project-manager@example.com"
	fallbackCompletedBy      = "team member"
)

// Result describes one delivered (or simulated) notification. Fields that do
// not apply to a notification kind stay zero and are left out of Fields.
type Result struct {
	Status    string // "sent" for mail, "posted" for chat
	Service   string
	Timestamp time.Time

	// Mail
	To            string
	Subject       string
	OldStatus     string
	NewStatus     string
	CommentAuthor string
	Project       string

	// Chat
	Channel  string
	Message  string
	Assignee string

	TaskID         *uint
	ProjectID      *uint
	OrganizationID *uint

	// Overdue reminders always carry due_date, null when the task has none.
	DueDate     *time.Time
	withDueDate bool
}

// Fields returns the descriptor as a JSON object, the shape stored in the
// integration log's response_data.
func (r Result) Fields() domain.JSONMap {
	m := domain.JSONMap{
		"status":    r.Status,
		"service":   r.Service,
		"timestamp": r.Timestamp.Format(time.RFC3339Nano),
	}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("to", r.To)
	put("subject", r.Subject)
	put("old_status", r.OldStatus)
	put("new_status", r.NewStatus)
	put("comment_author", r.CommentAuthor)
	put("project", r.Project)
	put("channel", r.Channel)
	put("message", r.Message)
	put("assignee", r.Assignee)
	if r.TaskID != nil {
		m["task_id"] = *r.TaskID
	}
	if r.ProjectID != nil {
		m["project_id"] = *r.ProjectID
	}
	if r.OrganizationID != nil {
		m["organization_id"] = *r.OrganizationID
	}
	if r.withDueDate {
		if r.DueDate != nil {
			m["due_date"] = r.DueDate.Format(time.RFC3339)
		} else {
			m["due_date"] = nil
		}
	}
	return m
}

// MarshalJSON encodes the descriptor as Fields.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(r.Fields()))
}

// Channel names a delivery channel in an orchestration result.
type Channel string

const (
	ChannelMail Channel = "mail"
	ChannelChat Channel = "chat"
)

// Results maps each channel an orchestration used to its descriptor.
type Results map[Channel]Result

func idPtr(id uint) *uint { return &id }
