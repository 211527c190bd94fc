// Package services – TaskService and CommentService
//
// These services are the mutation boundary of the integration subsystem.
// Every task or comment write commits first and is then handed to the
// Notifier, which decides which notifications go out. Notification failures
// never roll a write back.
package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// Notifier reacts to committed task and comment writes.
// *integrations.Trigger is the production implementation.
type Notifier interface {
	OnTaskSaved(ctx context.Context, change integrations.TaskChange)
	OnCommentSaved(ctx context.Context, comment *domain.TaskComment, created bool)
}

// TaskService creates, fetches and updates tasks.
type TaskService struct {
	DB       *gorm.DB
	Notifier Notifier
}

// NewTaskService constructs a TaskService. A nil notifier disables reactions.
func NewTaskService(db *gorm.DB, n Notifier) *TaskService {
	return &TaskService{DB: db, Notifier: n}
}

// CreateTaskInput carries the fields of a new task. An empty Status means TODO.
type CreateTaskInput struct {
	Title         string
	Description   string
	Status        domain.TaskStatus
	AssigneeEmail string
	DueDate       *time.Time
}

// TaskPatch lists the task fields an update may change. Nil fields are left
// alone. An empty AssigneeEmail unassigns; ClearDueDate drops the due date.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *domain.TaskStatus
	AssigneeEmail *string
	DueDate       *time.Time
	ClearDueDate  bool
}

func (s *TaskService) tracer() trace.Tracer { return otel.Tracer("services/TaskService") }

// Create inserts a task under projectID and notifies with a creation change.
//
// Errors: ErrEmptyTitle, ErrInvalidStatus, ErrInvalidEmail, ErrProjectNotFound,
// or the DB error.
func (s *TaskService) Create(ctx context.Context, projectID uint, in CreateTaskInput) (*domain.Task, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("project.id", int64(projectID))))
	defer span.End()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	assignee, err := normalizeEmail(in.AssigneeEmail)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ProjectID:     projectID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Status:        status,
		AssigneeEmail: assignee,
		DueDate:       utcPtr(in.DueDate),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetProject(ctx, tx, projectID); err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		return repo.CreateTask(ctx, tx, task)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	saved, err := repo.GetTask(ctx, s.DB, task.ID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("task.id", int64(saved.ID)))
	s.notify(ctx, integrations.TaskChange{Next: saved})
	return saved, nil
}

// Get returns the task with id, project and organization preloaded.
func (s *TaskService) Get(ctx context.Context, id uint) (*domain.Task, error) {
	ctx, span := s.tracer().Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("task.id", int64(id))))
	defer span.End()

	t, err := repo.GetTask(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	return t, nil
}

// Update applies patch to task id and notifies with the previous and next
// state. A patch that changes nothing still notifies; the trigger finds no
// difference and stays quiet.
//
// Errors: ErrTaskNotFound, ErrEmptyTitle, ErrInvalidStatus, ErrInvalidEmail,
// or the DB error.
func (s *TaskService) Update(ctx context.Context, id uint, patch TaskPatch) (*domain.Task, error) {
	ctx, span := s.tracer().Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("task.id", int64(id))))
	defer span.End()

	var prev domain.Task
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := repo.GetTask(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}
		prev = *current
		if err := applyPatch(current, patch); err != nil {
			return err
		}
		return notFound(repo.SaveTask(ctx, tx, current), ErrTaskNotFound)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	next, err := repo.GetTask(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	s.notify(ctx, integrations.TaskChange{Previous: &prev, Next: next})
	return next, nil
}

func (s *TaskService) notify(ctx context.Context, change integrations.TaskChange) {
	if s.Notifier != nil {
		s.Notifier.OnTaskSaved(ctx, change)
	}
}

func applyPatch(t *domain.Task, p TaskPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return ErrInvalidStatus
		}
		t.Status = *p.Status
	}
	if p.AssigneeEmail != nil {
		addr, err := normalizeEmail(*p.AssigneeEmail)
		if err != nil {
			return err
		}
		t.AssigneeEmail = addr
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		t.DueDate = utcPtr(p.DueDate)
	}
	return nil
}

// utcPtr copies t in UTC. Stored times must be UTC for SQLite comparisons.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// CommentService adds and lists task comments.
type CommentService struct {
	DB       *gorm.DB
	Notifier Notifier
}

// NewCommentService constructs a CommentService. A nil notifier disables reactions.
func NewCommentService(db *gorm.DB, n Notifier) *CommentService {
	return &CommentService{DB: db, Notifier: n}
}

// AddCommentInput carries the fields of a new comment.
type AddCommentInput struct {
	Content     string
	AuthorEmail string
}

// Add stores a comment on taskID and notifies with created=true. The
// returned comment carries its task.
//
// Errors: ErrEmptyComment, ErrInvalidEmail, ErrTaskNotFound, or the DB error.
func (s *CommentService) Add(ctx context.Context, taskID uint, in AddCommentInput) (*domain.TaskComment, error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "Add",
		trace.WithAttributes(attribute.Int64("task.id", int64(taskID))))
	defer span.End()

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	author, err := normalizeEmail(in.AuthorEmail)
	if err != nil || author == "" {
		return nil, ErrInvalidEmail
	}

	c := &domain.TaskComment{TaskID: taskID, Content: content, AuthorEmail: author}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := repo.GetTask(ctx, tx, taskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound)
		}
		c.Task = task
		return repo.CreateComment(ctx, tx, c)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.OnCommentSaved(ctx, c, true)
	}
	return c, nil
}

// List returns the comments of taskID, oldest first.
func (s *CommentService) List(ctx context.Context, taskID uint) ([]domain.TaskComment, error) {
	ctx, span := otel.Tracer("services/CommentService").Start(ctx, "List",
		trace.WithAttributes(attribute.Int64("task.id", int64(taskID))))
	defer span.End()

	if _, err := repo.GetTask(ctx, s.DB, taskID); err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	return repo.ListComments(ctx, s.DB, taskID)
}
