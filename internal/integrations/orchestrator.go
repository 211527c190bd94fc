package integrations

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-pm-backend/internal/domain"
)

// Orchestrator fans a domain event out to the mail and chat services. It
// does not consult settings; the caller decides whether an event fires. The
// first service error aborts the fan-out and is returned wrapped.
type Orchestrator struct {
	Mail MailService
	Chat ChatService
}

// NewOrchestrator wires the mock services.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{Mail: NewMockMailService(), Chat: NewMockChatService()}
}

func (o *Orchestrator) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("integrations/Orchestrator").Start(ctx, op, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// HandleTaskAssigned sends the assignment mail to assignee and posts the
// assignment to the organization channel.
func (o *Orchestrator) HandleTaskAssigned(ctx context.Context, task *domain.Task, assignee string) (Results, error) {
	ctx, span := o.start(ctx, "HandleTaskAssigned", taskAttr(task))
	defer span.End()

	mail, err := o.Mail.SendTaskAssignment(ctx, task, assignee)
	if err != nil {
		return nil, fail(span, fmt.Errorf("orchestrator: task assigned: %w", err))
	}
	chat, err := o.Chat.PostTaskAssignment(ctx, task, assignee)
	if err != nil {
		return nil, fail(span, fmt.Errorf("orchestrator: task assigned: %w", err))
	}

	log.Info().
		Str("integration", "orchestrator").
		Str("event_type", string(domain.EventTaskAssigned)).
		Uint("task_id", task.ID).
		Msg("task assignment handled via mail and chat")
	return Results{ChannelMail: mail, ChannelChat: chat}, nil
}

// HandleTaskCompleted sends the IN_PROGRESS to DONE status mail and posts the
// completion to the organization channel.
func (o *Orchestrator) HandleTaskCompleted(ctx context.Context, task *domain.Task) (Results, error) {
	ctx, span := o.start(ctx, "HandleTaskCompleted", taskAttr(task))
	defer span.End()

	mail, err := o.Mail.SendStatusChange(ctx, task, string(domain.TaskInProgress), string(domain.TaskDone))
	if err != nil {
		return nil, fail(span, fmt.Errorf("orchestrator: task completed: %w", err))
	}
	chat, err := o.Chat.PostTaskCompletion(ctx, task)
	if err != nil {
		return nil, fail(span, fmt.Errorf("orchestrator: task completed: %w", err))
	}

	log.Info().
		Str("integration", "orchestrator").
		Str("event_type", string(domain.EventTaskCompleted)).
		Uint("task_id", task.ID).
		Msg("task completion handled via mail and chat")
	return Results{ChannelMail: mail, ChannelChat: chat}, nil
}

// HandleNewComment mails the comment notification.
func (o *Orchestrator) HandleNewComment(ctx context.Context, comment *domain.TaskComment) (Results, error) {
	var attrs []attribute.KeyValue
	if comment != nil {
		attrs = append(attrs, attribute.Int64("task.id", int64(comment.TaskID)))
	}
	ctx, span := o.start(ctx, "HandleNewComment", attrs...)
	defer span.End()

	mail, err := o.Mail.SendCommentNotification(ctx, comment)
	if err != nil {
		return nil, fail(span, fmt.Errorf("orchestrator: new comment: %w", err))
	}

	log.Info().
		Str("integration", "orchestrator").
		Str("event_type", string(domain.EventCommentAdded)).
		Uint("task_id", comment.TaskID).
		Msg("new comment handled via mail")
	return Results{ChannelMail: mail}, nil
}

func taskAttr(task *domain.Task) attribute.KeyValue {
	if task == nil {
		return attribute.Int64("task.id", 0)
	}
	return attribute.Int64("task.id", int64(task.ID))
}
