package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())

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

// recordingNotifier captures every reaction request.
type recordingNotifier struct {
	mu       sync.Mutex
	changes  []integrations.TaskChange
	comments []*domain.TaskComment
}

func (n *recordingNotifier) OnTaskSaved(_ context.Context, change integrations.TaskChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

func (n *recordingNotifier) OnCommentSaved(_ context.Context, c *domain.TaskComment, created bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if created {
		n.comments = append(n.comments, c)
	}
}

type seeded struct {
	org     *domain.Organization
	project *domain.Project
}

func seed(t *testing.T, db *gorm.DB) seeded {
	t.Helper()
	ctx := context.Background()
	org, err := NewOrganizationService(db).Create(ctx, CreateOrganizationInput{
		Name:         "Acme Corp",
		ContactEmail: "ops@acme.test",
	})
	if err != nil {
		t.Fatalf("seed org: %v", err)
	}
	p, err := NewProjectService(db).Create(ctx, org.ID, CreateProjectInput{Name: "Website Redesign"})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return seeded{org: org, project: p}
}

func countLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.IntegrationLog{}).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }
