package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/services"
)

type cliTestEnv struct {
	dbPath string
	org    *domain.Organization
	task   *domain.Task
}

// setupCLITestEnv creates a migrated database file holding one organization,
// one project and one overdue assigned task.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SEED_DEFAULT_SETTINGS", "true")

	path := filepath.Join(t.TempDir(), "pm.db")
	db, err := repo.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	ctx := context.Background()

	org, err := services.NewOrganizationService(db).Create(ctx, services.CreateOrganizationInput{
		Name: "Acme Corp", ContactEmail: "ops@acme.example",
	})
	if err != nil {
		t.Fatalf("create org: %v", err)
	}
	project, err := services.NewProjectService(db).Create(ctx, org.ID, services.CreateProjectInput{Name: "Launch"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	due := time.Now().UTC().Add(-72 * time.Hour)
	task, err := services.NewTaskService(db, nil).Create(ctx, project.ID, services.CreateTaskInput{
		Title: "Design Review", AssigneeEmail: "alice@example.com", DueDate: &due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	return &cliTestEnv{dbPath: path, org: org, task: task}
}

func runCLI(t *testing.T, args []string, dbPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLISelfTest(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"selftest"}, env.dbPath)
	if err != nil {
		t.Fatalf("selftest: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Self-test scope: all",
		"mail: overdue reminder rejects nil task",
		"orchestrator: task assignment",
		"mock_mail",
		"mock_chat",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("selftest output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "FAILED") {
		t.Fatalf("unexpected failed check:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"selftest", "--service", "chat"}, env.dbPath)
	if err != nil || !strings.Contains(out, "chat: daily digest") || strings.Contains(out, "mail: task assignment") {
		t.Fatalf("selftest --service chat: %v\n%s", err, out)
	}

	if _, _, err := runCLI(t, []string{"selftest", "--service", "pager"}, env.dbPath); !errors.Is(err, integrations.ErrUnknownScope) {
		t.Fatalf("want ErrUnknownScope, got %v", err)
	}
}

func TestCLISeedAndListSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SEED_DEFAULT_SETTINGS", "false")

	out, _, err := runCLI(t, []string{"seed-settings"}, env.dbPath)
	if err != nil || !strings.Contains(out, "Created 4 settings row(s)") {
		t.Fatalf("first seed: %v\n%s", err, out)
	}
	out, _, err = runCLI(t, []string{"seed-settings"}, env.dbPath)
	if err != nil || !strings.Contains(out, "Created 0 settings row(s)") {
		t.Fatalf("second seed: %v\n%s", err, out)
	}

	out, _, err = runCLI(t, []string{"settings"}, env.dbPath)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	for _, svc := range domain.DefaultServices {
		if !strings.Contains(out, string(svc)) {
			t.Fatalf("settings output missing %s:\n%s", svc, out)
		}
	}
	if !strings.Contains(out, "Mock") {
		t.Fatalf("settings output missing mode:\n%s", out)
	}
}

func TestCLIRemindersAndDigest(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"reminders"}, env.dbPath)
	if err != nil {
		t.Fatalf("reminders: %v", err)
	}
	if !strings.Contains(strings.ToLower(out), "overdue") || !strings.Contains(out, "1") {
		t.Fatalf("reminders output:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"digest"}, env.dbPath); err == nil {
		t.Fatal("digest without --org should fail")
	}
	if _, _, err := runCLI(t, []string{"digest", "--org", "999"}, env.dbPath); !errors.Is(err, services.ErrOrganizationNotFound) {
		t.Fatalf("want ErrOrganizationNotFound, got %v", err)
	}

	out, _, err = runCLI(t, []string{"digest", "--org", "1"}, env.dbPath)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !strings.Contains(out, "#acme-corp") || !strings.Contains(out, "posted") {
		t.Fatalf("digest output:\n%s", out)
	}
}

func TestCLIPurgeLogs(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"purge-logs", "--days", "0"}, env.dbPath); err == nil {
		t.Fatal("purge-logs --days 0 should fail")
	}
	out, _, err := runCLI(t, []string{"purge-logs", "--days", "1"}, env.dbPath)
	if err != nil || !strings.Contains(out, "Deleted 0 integration log(s)") {
		t.Fatalf("purge-logs: %v\n%s", err, out)
	}
	out, _, err = runCLI(t, []string{"purge-logs"}, env.dbPath)
	if err != nil || !strings.Contains(out, "Deleted 0 integration log(s)") {
		t.Fatalf("purge-logs default: %v\n%s", err, out)
	}
}

func TestCLIInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, _, err := runCLI(t, []string{"settings"}, filepath.Join(t.TempDir(), "pm.db"))
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("want config error, got %v", err)
	}
}

func TestRenderTable(t *testing.T) {
	if got := renderTable(nil, nil, nil); got != "" {
		t.Fatalf("empty headers should render nothing, got %q", got)
	}
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "only") || !strings.Contains(out, "╭") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestResultTable(t *testing.T) {
	org := uint(7)
	out := resultTable(integrations.Result{Status: "posted", Service: "mock_chat", Channel: "#ops", OrganizationID: &org})
	for _, want := range []string{"channel", "#ops", "organization_id", "7", "posted"} {
		if !strings.Contains(out, want) {
			t.Fatalf("result table missing %q:\n%s", want, out)
		}
	}
}
