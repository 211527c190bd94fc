package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

func sampleTask() *domain.Task {
	org := &domain.Organization{ID: 1, Name: "Acme Corp", Slug: "acme-corp"}
	project := &domain.Project{ID: 2, OrganizationID: 1, Name: "Website Redesign", Organization: org}
	return &domain.Task{ID: 3, ProjectID: 2, Title: "Design Review", Status: domain.TaskTodo, Project: project}
}

func TestMockMail_Descriptors(t *testing.T) {
	ctx := context.Background()
	mail := &MockMailService{Now: func() time.Time { return fixedNow }}
	task := sampleTask()

	res, err := mail.SendTaskAssignment(ctx, task, "alice@example.com")
	if err != nil {
		t.Fatalf("SendTaskAssignment: %v", err)
	}
	f := res.Fields()
	want := map[string]any{
		"status": "sent", "to": "alice@example.com", "subject": "Task Assigned: Design Review",
		"service": "mock_email", "task_id": uint(3), "project": "Website Redesign",
	}
	for k, v := range want {
		if f[k] != v {
			t.Fatalf("assignment %s = %v; want %v", k, f[k], v)
		}
	}
	if f["timestamp"] != fixedNow.Format(time.RFC3339Nano) {
		t.Fatalf("timestamp = %v", f["timestamp"])
	}
	if _, ok := f["due_date"]; ok {
		t.Fatalf("due_date must only appear on overdue reminders")
	}

	res, _ = mail.SendStatusChange(ctx, task, "TODO", "IN_PROGRESS")
	if res.To != FallbackTeamRecipient || res.Subject != "Task Update: Design Review" || res.OldStatus != "TODO" || res.NewStatus != "IN_PROGRESS" {
		t.Fatalf("status change descriptor: %+v", res)
	}

	comment := &domain.TaskComment{TaskID: 3, AuthorEmail: "bob@example.com", Task: task}
	res, _ = mail.SendCommentNotification(ctx, comment)
	if res.To != FallbackTeamRecipient || res.Subject != "New Comment: Design Review" || res.CommentAuthor != "bob@example.com" {
		t.Fatalf("comment descriptor: %+v", res)
	}

	res, _ = mail.SendOverdueReminder(ctx, task)
	f = res.Fields()
	if res.To != FallbackManagerRecipient || res.Subject != "OVERDUE: Design Review" {
		t.Fatalf("overdue descriptor: %+v", res)
	}
	if v, ok := f["due_date"]; !ok || v != nil {
		t.Fatalf("overdue without due date must carry due_date=null, got %v (present=%v)", v, ok)
	}
	due := time.Date(2025, 6, 30, 17, 0, 0, 0, time.UTC)
	task.DueDate = &due
	task.AssigneeEmail = "carol@example.com"
	res, _ = mail.SendOverdueReminder(ctx, task)
	if f := res.Fields(); f["due_date"] != "2025-06-30T17:00:00Z" || f["to"] != "carol@example.com" {
		t.Fatalf("overdue with due date: %+v", f)
	}
}

func TestMockChat_Descriptors(t *testing.T) {
	ctx := context.Background()
	chat := &MockChatService{Now: func() time.Time { return fixedNow }}
	task := sampleTask()

	res, err := chat.PostTaskAssignment(ctx, task, "alice@example.com")
	if err != nil {
		t.Fatalf("PostTaskAssignment: %v", err)
	}
	if res.Status != "posted" || res.Service != "mock_slack" || res.Channel != "#acme-corp" ||
		res.Message != "📋 Task assigned: *Design Review* → alice@example.com" || *res.TaskID != 3 {
		t.Fatalf("assignment post: %+v", res)
	}

	res, _ = chat.PostTaskCompletion(ctx, task)
	if res.Message != "✅ Task completed: *Design Review* by team member" || res.Assignee != "team member" {
		t.Fatalf("completion without assignee: %+v", res)
	}
	task.AssigneeEmail = "alice@example.com"
	res, _ = chat.PostTaskCompletion(ctx, task)
	if res.Assignee != "alice@example.com" {
		t.Fatalf("completion should credit assignee: %+v", res)
	}

	res, _ = chat.PostProjectUpdate(ctx, task.Project, "Sprint 4 shipped")
	if res.Message != "📊 Project update: Sprint 4 shipped" || *res.ProjectID != 2 {
		t.Fatalf("project update: %+v", res)
	}

	res, _ = chat.PostDailyDigest(ctx, task.Project.Organization, 10, 7)
	if res.Message != "📊 Daily digest: 7/10 tasks completed today" || *res.OrganizationID != 1 {
		t.Fatalf("digest: %+v", res)
	}
}

func TestFormatters_MissingEntity(t *testing.T) {
	ctx := context.Background()
	mail := NewMockMailService()
	chat := NewMockChatService()
	orphan := &domain.Task{ID: 9, Title: "orphan"}

	calls := map[string]func() error{
		"assignment nil":     func() error { _, err := mail.SendTaskAssignment(ctx, nil, "a@b"); return err },
		"assignment orphan":  func() error { _, err := mail.SendTaskAssignment(ctx, orphan, "a@b"); return err },
		"status nil":         func() error { _, err := mail.SendStatusChange(ctx, nil, "A", "B"); return err },
		"comment nil":        func() error { _, err := mail.SendCommentNotification(ctx, nil); return err },
		"comment no task":    func() error { _, err := mail.SendCommentNotification(ctx, &domain.TaskComment{}); return err },
		"overdue nil":        func() error { _, err := mail.SendOverdueReminder(ctx, nil); return err },
		"chat assign orphan": func() error { _, err := chat.PostTaskAssignment(ctx, orphan, "a@b"); return err },
		"chat done nil":      func() error { _, err := chat.PostTaskCompletion(ctx, nil); return err },
		"project no org":     func() error { _, err := chat.PostProjectUpdate(ctx, &domain.Project{ID: 1}, "x"); return err },
		"digest nil":         func() error { _, err := chat.PostDailyDigest(ctx, nil, 1, 1); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrMissingEntity) {
			t.Fatalf("%s: expected ErrMissingEntity, got %v", name, err)
		}
	}

	// The status mail only needs the task itself.
	if _, err := mail.SendStatusChange(ctx, orphan, "TODO", "DONE"); err != nil {
		t.Fatalf("status change on orphan task should succeed: %v", err)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	r := Result{Status: "posted", Service: "mock_slack", Timestamp: fixedNow, Channel: "#acme", TaskID: idPtr(4)}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["channel"] != "#acme" || m["task_id"].(float64) != 4 {
		t.Fatalf("unexpected json: %s", b)
	}
	if _, ok := m["to"]; ok {
		t.Fatalf("empty fields must be omitted: %s", b)
	}
}
