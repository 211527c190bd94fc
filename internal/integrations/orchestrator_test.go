package integrations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

func TestOrchestrator_HandleTaskAssigned(t *testing.T) {
	o := &Orchestrator{
		Mail: &MockMailService{Now: func() time.Time { return fixedNow }},
		Chat: &MockChatService{Now: func() time.Time { return fixedNow }},
	}
	task := sampleTask()

	results, err := o.HandleTaskAssigned(context.Background(), task, "alice@example.com")
	if err != nil {
		t.Fatalf("HandleTaskAssigned: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected mail and chat results, got %v", results)
	}
	mail, chat := results[ChannelMail], results[ChannelChat]
	if mail.Status != "sent" || mail.To != "alice@example.com" || mail.Subject != "Task Assigned: Design Review" ||
		mail.Service != "mock_email" || *mail.TaskID != task.ID {
		t.Fatalf("mail result: %+v", mail)
	}
	if chat.Status != "posted" || chat.Channel != "#acme-corp" || *chat.TaskID != task.ID {
		t.Fatalf("chat result: %+v", chat)
	}
}

func TestOrchestrator_HandleTaskCompleted(t *testing.T) {
	o := NewOrchestrator()
	task := sampleTask()
	task.Status = domain.TaskDone

	results, err := o.HandleTaskCompleted(context.Background(), task)
	if err != nil {
		t.Fatalf("HandleTaskCompleted: %v", err)
	}
	mail := results[ChannelMail]
	if mail.OldStatus != "IN_PROGRESS" || mail.NewStatus != "DONE" {
		t.Fatalf("completion mail must report IN_PROGRESS to DONE, got %+v", mail)
	}
	if results[ChannelChat].Assignee != "team member" {
		t.Fatalf("chat result: %+v", results[ChannelChat])
	}
}

func TestOrchestrator_HandleNewComment(t *testing.T) {
	o := NewOrchestrator()
	task := sampleTask()
	task.AssigneeEmail = "alice@example.com"

	results, err := o.HandleNewComment(context.Background(), &domain.TaskComment{TaskID: task.ID, AuthorEmail: "bob@example.com", Task: task})
	if err != nil {
		t.Fatalf("HandleNewComment: %v", err)
	}
	if len(results) != 1 || results[ChannelMail].To != "alice@example.com" {
		t.Fatalf("comment results: %+v", results)
	}

	if _, err := o.HandleNewComment(context.Background(), nil); !errors.Is(err, ErrMissingEntity) {
		t.Fatalf("nil comment should fail with ErrMissingEntity, got %v", err)
	}
}

func TestOrchestrator_FirstErrorAborts(t *testing.T) {
	chat := &countingChat{}
	o := &Orchestrator{Mail: failingMail{err: errBoom}, Chat: chat}

	_, err := o.HandleTaskAssigned(context.Background(), sampleTask(), "alice@example.com")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if chat.calls != 0 {
		t.Fatalf("chat must not be called after the mail failure, calls=%d", chat.calls)
	}

	orphan := &domain.Task{ID: 1, Title: "no project"}
	if _, err := NewOrchestrator().HandleTaskCompleted(context.Background(), orphan); !errors.Is(err, ErrMissingEntity) {
		t.Fatalf("completion of orphan task should fail on chat, got %v", err)
	}
}
