package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Service identifies the integration channel that produced a log row.
type Service string

const (
	ServiceMockMail Service = "mock_mail"
	ServiceMockChat Service = "mock_chat"
	ServiceMail     Service = "mail"
	ServiceChat     Service = "chat"

	// ServiceOrchestrator tags rows written when a task reaction fails as a
	// whole. It is never a valid settings key.
	ServiceOrchestrator Service = "integration_orchestrator"
)

// DefaultServices lists the services that receive a settings row at startup.
var DefaultServices = []Service{ServiceMockMail, ServiceMockChat, ServiceMail, ServiceChat}

// EventType is the domain event a dispatch attempt reacted to.
type EventType string

const (
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskCompleted     EventType = "task_completed"
	EventCommentAdded      EventType = "comment_added"
	EventOverdueReminder   EventType = "overdue_reminder"
	EventDailyDigest       EventType = "daily_digest"
	EventProjectUpdate     EventType = "project_update"

	// EventTaskUpdated tags the failure row of a task reaction.
	EventTaskUpdated EventType = "task_updated"
)

// LogStatus is the outcome of a dispatch attempt.
type LogStatus string

const (
	StatusSuccess  LogStatus = "success"
	StatusFailed   LogStatus = "failed"
	StatusPending  LogStatus = "pending"
	StatusRetrying LogStatus = "retrying"
)

// Enum parse errors, returned for raw strings supplied by admin callers.
var (
	ErrUnknownService   = errors.New("unknown integration service")
	ErrUnknownEventType = errors.New("unknown integration event type")
	ErrUnknownLogStatus = errors.New("unknown integration log status")
)

// ParseService validates a raw service name. The orchestrator tag is accepted
// so admins can filter on failure rows.
func ParseService(s string) (Service, error) {
	switch v := Service(strings.ToLower(strings.TrimSpace(s))); v {
	case ServiceMockMail, ServiceMockChat, ServiceMail, ServiceChat, ServiceOrchestrator:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, s)
}

// ParseEventType validates a raw event type.
func ParseEventType(s string) (EventType, error) {
	switch v := EventType(strings.ToLower(strings.TrimSpace(s))); v {
	case EventTaskAssigned, EventTaskStatusChanged, EventTaskCompleted, EventCommentAdded,
		EventOverdueReminder, EventDailyDigest, EventProjectUpdate, EventTaskUpdated:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
}

// ParseLogStatus validates a raw log status.
func ParseLogStatus(s string) (LogStatus, error) {
	switch v := LogStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case StatusSuccess, StatusFailed, StatusPending, StatusRetrying:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLogStatus, s)
}

// IsSettingsKey reports whether s names a service that may own a settings row.
func (s Service) IsSettingsKey() bool {
	for _, d := range DefaultServices {
		if s == d {
			return true
		}
	}
	return false
}

// JSONMap is a free-form JSON object stored as TEXT.
type JSONMap map[string]any

// Value implements driver.Valuer. A nil map is stored as "{}".
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for TEXT and BLOB columns.
func (m *JSONMap) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("JSONMap: unsupported scan type %T", value)
	}
	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// IntegrationLog records one dispatch attempt. TaskID, ProjectID and
// OrganizationID are loose references: no foreign keys, the row outlives
// the entity.
type IntegrationLog struct {
	ID             uint      `json:"id"              gorm:"primaryKey"`
	Service        Service   `json:"service"         gorm:"type:varchar(50);not null;index:idx_log_service_event,priority:1"`
	EventType      EventType `json:"event_type"      gorm:"type:varchar(50);not null;index:idx_log_service_event,priority:2"`
	Status         LogStatus `json:"status"          gorm:"type:varchar(20);not null;default:'success';index:idx_log_status_created,priority:1"`
	TaskID         *uint     `json:"task_id"         gorm:"index"`
	ProjectID      *uint     `json:"project_id"      gorm:"index"`
	OrganizationID *uint     `json:"organization_id"`
	Recipient      string    `json:"recipient"       gorm:"type:varchar(254)"`
	Subject        string    `json:"subject"         gorm:"type:varchar(255)"`
	RequestData    JSONMap   `json:"request_data"    gorm:"type:text"`
	ResponseData   JSONMap   `json:"response_data"   gorm:"type:text"`
	ErrorMessage   string    `json:"error_message,omitempty" gorm:"type:text"`
	ResponseTimeMS *int64    `json:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at"      gorm:"index:idx_log_status_created,priority:2"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for IntegrationLog.
func (IntegrationLog) TableName() string { return "integration_logs" }

// IsSuccessful reports whether the attempt ended in success.
func (l *IntegrationLog) IsSuccessful() bool { return l.Status == StatusSuccess }

func (l *IntegrationLog) String() string {
	return fmt.Sprintf("%s - %s (%s)", l.Service, l.EventType, l.Status)
}

// FormattedResponseData pretty-prints ResponseData for operators.
func (l *IntegrationLog) FormattedResponseData() string {
	if len(l.ResponseData) == 0 {
		return "No response data"
	}
	b, err := json.MarshalIndent(l.ResponseData, "", "  ")
	if err != nil {
		return "No response data"
	}
	return string(b)
}

// SubjectPreview returns the first 50 runes of Subject, "-" when empty.
func (l *IntegrationLog) SubjectPreview() string {
	const max = 50
	if l.Subject == "" {
		return "-"
	}
	if utf8.RuneCountInString(l.Subject) <= max {
		return l.Subject
	}
	return string([]rune(l.Subject)[:max]) + "..."
}

// ResponseSpeed buckets ResponseTimeMS: fast under 100ms, medium under 500ms,
// slow otherwise. Empty when no timing was captured.
func (l *IntegrationLog) ResponseSpeed() string {
	if l.ResponseTimeMS == nil {
		return ""
	}
	switch ms := *l.ResponseTimeMS; {
	case ms < 100:
		return "fast"
	case ms < 500:
		return "medium"
	default:
		return "slow"
	}
}

// IntegrationSettings holds the per-service switches consulted before
// dispatch. ServiceName is unique. The boolean columns carry no SQL default
// because GORM would substitute it for an explicit false; use
// NewIntegrationSettings for the enabled+mock defaults.
type IntegrationSettings struct {
	ID            uint      `json:"id"            gorm:"primaryKey"`
	ServiceName   string    `json:"service_name"  gorm:"type:varchar(50);not null;uniqueIndex"`
	IsEnabled     bool      `json:"is_enabled"    gorm:"not null"`
	IsMockMode    bool      `json:"is_mock_mode"  gorm:"not null"`
	Configuration JSONMap   `json:"configuration" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewIntegrationSettings returns a row for name with the enabled and mock
// defaults applied.
func NewIntegrationSettings(name string) IntegrationSettings {
	return IntegrationSettings{
		ServiceName:   name,
		IsEnabled:     true,
		IsMockMode:    true,
		Configuration: JSONMap{},
	}
}

// TableName returns the database table name for IntegrationSettings.
func (IntegrationSettings) TableName() string { return "integration_settings" }

func (s *IntegrationSettings) String() string {
	state := "Disabled"
	if s.IsEnabled {
		state = "Enabled"
	}
	return fmt.Sprintf("%s (%s)", s.ServiceName, state)
}

// ModeLabel returns "Mock" or "Live".
func (s *IntegrationSettings) ModeLabel() string {
	if s.IsMockMode {
		return "Mock"
	}
	return "Live"
}
