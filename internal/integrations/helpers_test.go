package integrations

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

var fixedNow = time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:integrations_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: repo.UTCNow,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fixture struct {
	org     *domain.Organization
	project *domain.Project
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	org := &domain.Organization{Name: "Acme Corp", ContactEmail: "ops@acme.test"}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("seed org: %v", err)
	}
	p := &domain.Project{OrganizationID: org.ID, Name: "Website Redesign"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return fixture{org: org, project: p}
}

// createTask inserts a task and returns it reloaded with associations.
func createTask(t *testing.T, db *gorm.DB, projectID uint, title, assignee string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task := &domain.Task{ProjectID: projectID, Title: title, AssigneeEmail: assignee, Status: status}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	loaded, err := repo.GetTask(context.Background(), db, task.ID)
	if err != nil {
		t.Fatalf("reload task: %v", err)
	}
	return loaded
}

func newTestTrigger(db *gorm.DB, settings SettingsReader) *Trigger {
	trg := NewTrigger(db, settings)
	trg.Orchestrator = &Orchestrator{
		Mail: &MockMailService{Now: func() time.Time { return fixedNow }},
		Chat: &MockChatService{Now: func() time.Time { return fixedNow }},
	}
	return trg
}

func allLogs(t *testing.T, db *gorm.DB) []domain.IntegrationLog {
	t.Helper()
	var out []domain.IntegrationLog
	if err := db.Order("id asc").Find(&out).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	return out
}

func clone(task *domain.Task) *domain.Task {
	c := *task
	return &c
}

var errBoom = errors.New("provider unavailable")

// failingMail fails every call with err.
type failingMail struct{ err error }

func (f failingMail) SendTaskAssignment(context.Context, *domain.Task, string) (Result, error) {
	return Result{}, f.err
}
func (f failingMail) SendStatusChange(context.Context, *domain.Task, string, string) (Result, error) {
	return Result{}, f.err
}
func (f failingMail) SendCommentNotification(context.Context, *domain.TaskComment) (Result, error) {
	return Result{}, f.err
}
func (f failingMail) SendOverdueReminder(context.Context, *domain.Task) (Result, error) {
	return Result{}, f.err
}

// countingChat records how often it was called and delegates to a mock.
type countingChat struct {
	MockChatService
	calls int
}

func (c *countingChat) PostTaskAssignment(ctx context.Context, task *domain.Task, assignee string) (Result, error) {
	c.calls++
	return c.MockChatService.PostTaskAssignment(ctx, task, assignee)
}

// panickingMail panics on every call.
type panickingMail struct{}

func (panickingMail) SendTaskAssignment(context.Context, *domain.Task, string) (Result, error) {
	panic("smtp client nil")
}
func (panickingMail) SendStatusChange(context.Context, *domain.Task, string, string) (Result, error) {
	panic("smtp client nil")
}
func (panickingMail) SendCommentNotification(context.Context, *domain.TaskComment) (Result, error) {
	panic("smtp client nil")
}
func (panickingMail) SendOverdueReminder(context.Context, *domain.Task) (Result, error) {
	panic("smtp client nil")
}
