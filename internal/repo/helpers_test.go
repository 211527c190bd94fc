package repo

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// newTestDB opens a private in-memory database. With no models given the
// full schema is migrated; pass models to migrate only those.
func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: UTCNow,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) == 0 {
		err = AutoMigrate(db)
	} else {
		err = db.AutoMigrate(migrate...)
	}
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newEmptyDB opens a private in-memory database without any tables.
func newEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:empty_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: UTCNow,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func seedOrg(t *testing.T, db *gorm.DB, name string) *domain.Organization {
	t.Helper()
	o := &domain.Organization{Name: name, ContactEmail: "ops@example.com"}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return o
}

func seedProject(t *testing.T, db *gorm.DB, orgID uint, name string) *domain.Project {
	t.Helper()
	p := &domain.Project{OrganizationID: orgID, Name: name, Status: domain.ProjectActive}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func seedTask(t *testing.T, db *gorm.DB, projectID uint, title string, status domain.TaskStatus, due *time.Time) *domain.Task {
	t.Helper()
	task := &domain.Task{ProjectID: projectID, Title: title, Status: status, DueDate: due}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func ptrUint(v uint) *uint { return &v }
