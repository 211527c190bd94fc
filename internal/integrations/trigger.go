package integrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// ErrServiceDisabled is returned by the on-demand dispatches (reminders,
// digests, project updates) when the channel they use is switched off.
var ErrServiceDisabled = errors.New("integration service disabled")

// ErrReactionPanic wraps a panic raised while reacting to a saved entity.
var ErrReactionPanic = errors.New("integration reaction panicked")

// statusNew stands in for the previous status of a task that had none.
const statusNew = "NEW"

// TaskChange is the diff a task mutation hands to the trigger. Previous is
// nil when the task was just created.
type TaskChange struct {
	Previous *domain.Task
	Next     *domain.Task
}

// Created reports whether the change is a creation.
func (c TaskChange) Created() bool { return c.Previous == nil }

// PreviousStatus returns the status before the change, empty on creation.
func (c TaskChange) PreviousStatus() domain.TaskStatus {
	if c.Previous == nil {
		return ""
	}
	return c.Previous.Status
}

// PreviousAssignee returns the assignee before the change, empty on creation.
func (c TaskChange) PreviousAssignee() string {
	if c.Previous == nil {
		return ""
	}
	return c.Previous.AssigneeEmail
}

// StatusChanged reports whether an update moved the task to another status.
func (c TaskChange) StatusChanged() bool {
	return c.Previous != nil && c.Previous.Status != c.Next.Status
}

// AssigneeChanged reports whether an update changed the assignee.
func (c TaskChange) AssigneeChanged() bool {
	return c.Previous != nil && c.Previous.AssigneeEmail != c.Next.AssigneeEmail
}

// Trigger turns saved tasks and comments into notifications. It is the
// containment boundary of the subsystem: OnTaskSaved and OnCommentSaved never
// return errors, a failed reaction is logged and recorded as a failed
// integration log row instead.
type Trigger struct {
	DB           *gorm.DB
	Settings     SettingsReader
	Orchestrator *Orchestrator
	Recorder     *Recorder
}

// NewTrigger wires a trigger over db with the mock orchestrator.
func NewTrigger(db *gorm.DB, settings SettingsReader) *Trigger {
	return &Trigger{
		DB:           db,
		Settings:     settings,
		Orchestrator: NewOrchestrator(),
		Recorder:     &Recorder{DB: db},
	}
}

func (t *Trigger) tracer() trace.Tracer { return otel.Tracer("integrations/Trigger") }

func (t *Trigger) enabled(ctx context.Context, s domain.Service) bool {
	return t.Settings.IsServiceEnabled(ctx, s)
}

// OnTaskSaved reacts to a created or updated task. The reaction is skipped
// only when both mock_mail and mock_chat are disabled.
//
// On creation with an assignee, or when an update assigns someone new, the
// assignment goes out by mail and chat. When an update changes the status a
// status mail goes out, and moving to DONE additionally posts the completion
// to chat.
func (t *Trigger) OnTaskSaved(ctx context.Context, change TaskChange) {
	if change.Next == nil {
		return
	}
	ctx, span := t.tracer().Start(ctx, "OnTaskSaved",
		trace.WithAttributes(
			attribute.Int64("task.id", int64(change.Next.ID)),
			attribute.Bool("task.created", change.Created()),
		),
	)
	defer span.End()

	err := guard(func() error {
		if !t.enabled(ctx, domain.ServiceMockMail) && !t.enabled(ctx, domain.ServiceMockChat) {
			log.Debug().Uint("task_id", change.Next.ID).Msg("integrations disabled, task change ignored")
			return nil
		}
		return t.reactToTask(ctx, change)
	})
	if err != nil {
		task := change.Next
		span.RecordError(err)
		log.Error().
			Err(err).
			Str("integration", string(domain.ServiceOrchestrator)).
			Uint("task_id", task.ID).
			Msg("error handling task changes")
		t.Recorder.Record(ctx, &domain.IntegrationLog{
			Service:      domain.ServiceOrchestrator,
			EventType:    domain.EventTaskUpdated,
			Status:       domain.StatusFailed,
			TaskID:       idPtr(task.ID),
			ProjectID:    idPtr(task.ProjectID),
			ErrorMessage: err.Error(),
		})
	}
}

func (t *Trigger) reactToTask(ctx context.Context, change TaskChange) error {
	task := change.Next
	request := t.taskRequest(ctx, change)

	if change.Created() {
		if task.AssigneeEmail != "" {
			return t.assigned(ctx, task, request)
		}
		return nil
	}

	if change.AssigneeChanged() && task.AssigneeEmail != "" {
		if err := t.assigned(ctx, task, request); err != nil {
			return err
		}
	}

	if change.StatusChanged() {
		old := string(change.PreviousStatus())
		if old == "" {
			old = statusNew
		}
		start := time.Now()
		res, err := t.Orchestrator.Mail.SendStatusChange(ctx, task, old, string(task.Status))
		elapsed := observe(domain.EventTaskStatusChanged, start)
		if err != nil {
			return err
		}
		t.recordSuccess(ctx, task, domain.ServiceMockMail, domain.EventTaskStatusChanged,
			recipientOr(task.AssigneeEmail, FallbackTeamRecipient), "Task Update: "+task.Title,
			request, res, elapsed)

		if task.Status == domain.TaskDone {
			start := time.Now()
			results, err := t.Orchestrator.HandleTaskCompleted(ctx, task)
			elapsed := observe(domain.EventTaskCompleted, start)
			if err != nil {
				return err
			}
			t.recordSuccess(ctx, task, domain.ServiceMockChat, domain.EventTaskCompleted,
				ChannelName(task.Organization()), "Task completed: "+task.Title,
				request, results[ChannelChat], elapsed)
		}
	}
	return nil
}

func (t *Trigger) assigned(ctx context.Context, task *domain.Task, request domain.JSONMap) error {
	start := time.Now()
	results, err := t.Orchestrator.HandleTaskAssigned(ctx, task, task.AssigneeEmail)
	elapsed := observe(domain.EventTaskAssigned, start)
	if err != nil {
		return err
	}
	t.recordSuccess(ctx, task, domain.ServiceMockMail, domain.EventTaskAssigned,
		task.AssigneeEmail, "Task Assigned: "+task.Title, request, results[ChannelMail], elapsed)
	t.recordSuccess(ctx, task, domain.ServiceMockChat, domain.EventTaskAssigned,
		ChannelName(task.Organization()), "Task assigned: "+task.Title, request, results[ChannelChat], elapsed)
	return nil
}

// OnCommentSaved mails the task's assignee about a new comment when mock_mail
// is enabled. Updates (created=false) are ignored.
func (t *Trigger) OnCommentSaved(ctx context.Context, comment *domain.TaskComment, created bool) {
	if !created || comment == nil {
		return
	}
	ctx, span := t.tracer().Start(ctx, "OnCommentSaved",
		trace.WithAttributes(attribute.Int64("task.id", int64(comment.TaskID))))
	defer span.End()

	if !t.enabled(ctx, domain.ServiceMockMail) {
		return
	}

	start := time.Now()
	var results Results
	err := guard(func() (err error) {
		results, err = t.Orchestrator.HandleNewComment(ctx, comment)
		return err
	})
	elapsed := observe(domain.EventCommentAdded, start)
	if err != nil {
		span.RecordError(err)
		log.Error().
			Err(err).
			Str("integration", string(domain.ServiceMockMail)).
			Uint("task_id", comment.TaskID).
			Msg("error handling new comment")
		entry := &domain.IntegrationLog{
			Service:      domain.ServiceMockMail,
			EventType:    domain.EventCommentAdded,
			Status:       domain.StatusFailed,
			TaskID:       idPtr(comment.TaskID),
			ErrorMessage: err.Error(),
		}
		if comment.Task != nil {
			entry.ProjectID = idPtr(comment.Task.ProjectID)
		}
		t.Recorder.Record(ctx, entry)
		return
	}

	task := comment.Task
	request := domain.JSONMap{
		"task_id":      comment.TaskID,
		"comment_id":   comment.ID,
		"author_email": comment.AuthorEmail,
		"mock_mode":    t.Settings.IsMockMode(ctx, domain.ServiceMockMail),
	}
	t.recordSuccess(ctx, task, domain.ServiceMockMail, domain.EventCommentAdded,
		recipientOr(task.AssigneeEmail, FallbackTeamRecipient), "New Comment: "+task.Title,
		request, results[ChannelMail], elapsed)
}

// ReminderReport summarises an overdue sweep.
type ReminderReport struct {
	Overdue int `json:"overdue"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// SendOverdueReminders mails a reminder for every task overdue at now. It
// returns ErrServiceDisabled when mock_mail is off. Individual send failures
// are recorded and counted, not returned.
func (t *Trigger) SendOverdueReminders(ctx context.Context, now time.Time) (ReminderReport, error) {
	ctx, span := t.tracer().Start(ctx, "SendOverdueReminders")
	defer span.End()

	var rep ReminderReport
	if !t.enabled(ctx, domain.ServiceMockMail) {
		return rep, fmt.Errorf("overdue reminders: %w: %s", ErrServiceDisabled, domain.ServiceMockMail)
	}
	tasks, err := repo.ListOverdueTasks(ctx, t.DB, now)
	if err != nil {
		return rep, fmt.Errorf("overdue reminders: %w", err)
	}
	rep.Overdue = len(tasks)

	for i := range tasks {
		task := &tasks[i]
		start := time.Now()
		res, err := t.Orchestrator.Mail.SendOverdueReminder(ctx, task)
		elapsed := observe(domain.EventOverdueReminder, start)
		if err != nil {
			rep.Failed++
			t.recordFailure(ctx, task, domain.ServiceMockMail, domain.EventOverdueReminder, err)
			continue
		}
		request := domain.JSONMap{"task_id": task.ID, "as_of": now.UTC().Format(time.RFC3339)}
		t.recordSuccess(ctx, task, domain.ServiceMockMail, domain.EventOverdueReminder,
			res.To, res.Subject, request, res, elapsed)
		rep.Sent++
	}

	log.Info().
		Str("event_type", string(domain.EventOverdueReminder)).
		Int("overdue", rep.Overdue).
		Int("sent", rep.Sent).
		Int("failed", rep.Failed).
		Msg("overdue sweep finished")
	return rep, nil
}

// PostDailyDigest posts the number of tasks in orgID and how many of them
// were completed since the start of now's day.
func (t *Trigger) PostDailyDigest(ctx context.Context, orgID uint, now time.Time) (Result, error) {
	ctx, span := t.tracer().Start(ctx, "PostDailyDigest",
		trace.WithAttributes(attribute.Int64("organization.id", int64(orgID))))
	defer span.End()

	if !t.enabled(ctx, domain.ServiceMockChat) {
		return Result{}, fmt.Errorf("daily digest: %w: %s", ErrServiceDisabled, domain.ServiceMockChat)
	}
	org, err := repo.GetOrganization(ctx, t.DB, orgID)
	if err != nil {
		return Result{}, fmt.Errorf("daily digest: %w", err)
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	total, done, err := repo.CountOrgTasks(ctx, t.DB, org.ID, dayStart)
	if err != nil {
		return Result{}, fmt.Errorf("daily digest: %w", err)
	}

	start := time.Now()
	res, err := t.Orchestrator.Chat.PostDailyDigest(ctx, org, total, done)
	elapsed := observe(domain.EventDailyDigest, start)
	if err != nil {
		t.Recorder.Record(ctx, &domain.IntegrationLog{
			Service:        domain.ServiceMockChat,
			EventType:      domain.EventDailyDigest,
			Status:         domain.StatusFailed,
			OrganizationID: idPtr(org.ID),
			ErrorMessage:   err.Error(),
		})
		return Result{}, err
	}
	t.Recorder.Record(ctx, &domain.IntegrationLog{
		Service:        domain.ServiceMockChat,
		EventType:      domain.EventDailyDigest,
		OrganizationID: idPtr(org.ID),
		Recipient:      res.Channel,
		Subject:        "Daily digest: " + org.Name,
		RequestData:    domain.JSONMap{"organization_id": org.ID, "task_count": total, "completed_count": done},
		ResponseData:   res.Fields(),
		ResponseTimeMS: &elapsed,
	})
	return res, nil
}

// PostProjectUpdate posts message to the channel of projectID's organization.
func (t *Trigger) PostProjectUpdate(ctx context.Context, projectID uint, message string) (Result, error) {
	ctx, span := t.tracer().Start(ctx, "PostProjectUpdate",
		trace.WithAttributes(attribute.Int64("project.id", int64(projectID))))
	defer span.End()

	if !t.enabled(ctx, domain.ServiceMockChat) {
		return Result{}, fmt.Errorf("project update: %w: %s", ErrServiceDisabled, domain.ServiceMockChat)
	}
	project, err := repo.GetProject(ctx, t.DB, projectID)
	if err != nil {
		return Result{}, fmt.Errorf("project update: %w", err)
	}

	start := time.Now()
	res, err := t.Orchestrator.Chat.PostProjectUpdate(ctx, project, message)
	elapsed := observe(domain.EventProjectUpdate, start)
	if err != nil {
		t.Recorder.Record(ctx, &domain.IntegrationLog{
			Service:      domain.ServiceMockChat,
			EventType:    domain.EventProjectUpdate,
			Status:       domain.StatusFailed,
			ProjectID:    idPtr(project.ID),
			ErrorMessage: err.Error(),
		})
		return Result{}, err
	}
	t.Recorder.Record(ctx, &domain.IntegrationLog{
		Service:        domain.ServiceMockChat,
		EventType:      domain.EventProjectUpdate,
		ProjectID:      idPtr(project.ID),
		OrganizationID: idPtr(project.OrganizationID),
		Recipient:      res.Channel,
		Subject:        "Project update: " + project.Name,
		RequestData:    domain.JSONMap{"project_id": project.ID, "message": message},
		ResponseData:   res.Fields(),
		ResponseTimeMS: &elapsed,
	})
	return res, nil
}

func (t *Trigger) taskRequest(ctx context.Context, change TaskChange) domain.JSONMap {
	task := change.Next
	return domain.JSONMap{
		"task_id":           task.ID,
		"created":           change.Created(),
		"previous_status":   string(change.PreviousStatus()),
		"status":            string(task.Status),
		"previous_assignee": change.PreviousAssignee(),
		"assignee":          task.AssigneeEmail,
		"mock_mode": map[string]bool{
			string(domain.ServiceMockMail): t.Settings.IsMockMode(ctx, domain.ServiceMockMail),
			string(domain.ServiceMockChat): t.Settings.IsMockMode(ctx, domain.ServiceMockChat),
		},
	}
}

func (t *Trigger) recordSuccess(ctx context.Context, task *domain.Task, svc domain.Service, ev domain.EventType,
	recipient, subject string, request domain.JSONMap, res Result, elapsedMS int64) {
	entry := taskLog(task, svc, ev)
	entry.Recipient = recipient
	entry.Subject = subject
	entry.RequestData = request
	entry.ResponseData = res.Fields()
	entry.ResponseTimeMS = &elapsedMS
	t.Recorder.Record(ctx, entry)
}

func (t *Trigger) recordFailure(ctx context.Context, task *domain.Task, svc domain.Service, ev domain.EventType, err error) {
	entry := taskLog(task, svc, ev)
	entry.Status = domain.StatusFailed
	entry.ErrorMessage = err.Error()
	t.Recorder.Record(ctx, entry)
}

func taskLog(task *domain.Task, svc domain.Service, ev domain.EventType) *domain.IntegrationLog {
	entry := &domain.IntegrationLog{Service: svc, EventType: ev}
	if task == nil {
		return entry
	}
	entry.TaskID = idPtr(task.ID)
	entry.ProjectID = idPtr(task.ProjectID)
	if org := task.Organization(); org != nil {
		entry.OrganizationID = idPtr(org.ID)
	}
	return entry
}

// observe records the dispatch duration and returns it in milliseconds.
func observe(ev domain.EventType, start time.Time) int64 {
	d := time.Since(start)
	dispatchDuration.WithLabelValues(string(ev)).Observe(d.Seconds())
	return d.Milliseconds()
}

// guard runs fn and turns a panic inside it into an ErrReactionPanic error,
// so a misbehaving channel never escapes the committed mutation.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrReactionPanic, r)
		}
	}()
	return fn()
}
