// Package handlers exposes the REST endpoints for organizations, projects,
// tasks and comments, plus the admin surface over the integration log,
// integration settings and on-demand dispatches.
//
// Handlers are transport-thin: they validate input, parse raw enum strings
// at the boundary, call application services and translate results into
// HTTP responses (including conditional and idempotent responses).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/http/middleware"
	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// OrganizationService manages tenants.
type OrganizationService interface {
	Create(ctx context.Context, in services.CreateOrganizationInput) (*domain.Organization, error)
	Get(ctx context.Context, id uint) (*domain.Organization, error)
}

// ProjectService manages projects within a tenant.
type ProjectService interface {
	Create(ctx context.Context, orgID uint, in services.CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id uint) (*domain.Project, error)
}

// TaskService creates and mutates tasks. Implementations notify the
// integration layer after each committed write.
type TaskService interface {
	Create(ctx context.Context, projectID uint, in services.CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id uint) (*domain.Task, error)
	Update(ctx context.Context, id uint, patch services.TaskPatch) (*domain.Task, error)
}

// CommentService adds and lists task comments.
type CommentService interface {
	Add(ctx context.Context, taskID uint, in services.AddCommentInput) (*domain.TaskComment, error)
	List(ctx context.Context, taskID uint) ([]domain.TaskComment, error)
}

// IntegrationLogService reads and curates integration log rows.
type IntegrationLogService interface {
	ListPage(ctx context.Context, f repo.LogFilter, page, pageSize int) ([]domain.IntegrationLog, int64, error)
	Stats(ctx context.Context, f repo.LogFilter) (int64, *time.Time, error)
	Get(ctx context.Context, id uint) (*domain.IntegrationLog, error)
	MarkSuccess(ctx context.Context, id uint, response domain.JSONMap) (*domain.IntegrationLog, error)
	MarkFailed(ctx context.Context, id uint, msg string) (*domain.IntegrationLog, error)
	BulkUpdateStatus(ctx context.Context, ids []uint, status domain.LogStatus) (int64, error)
	Purge(ctx context.Context, olderThanDays int) (int64, error)
}

// SettingsService reads and edits per-service integration settings.
type SettingsService interface {
	List(ctx context.Context) ([]domain.IntegrationSettings, error)
	Get(ctx context.Context, name string) (*domain.IntegrationSettings, error)
	Update(ctx context.Context, name string, patch services.SettingsPatch) (*domain.IntegrationSettings, error)
}

// IntegrationService runs the self-test and the on-demand dispatches.
type IntegrationService interface {
	SelfTest(ctx context.Context, rawScope string) (integrations.SelfTestReport, error)
	SendOverdueReminders(ctx context.Context) (integrations.ReminderReport, error)
	PostDailyDigest(ctx context.Context, orgID uint) (integrations.Result, error)
	PostProjectUpdate(ctx context.Context, projectID uint, message string) (integrations.Result, error)
}

// IdempotencyStore remembers which resource an idempotent POST created.
// Lookup returns nil, nil when no live record exists.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, scope, key string) (*domain.Idempotency, error)
	Save(ctx context.Context, userID, scope, key string, resourceID uint, status int) error
}

//
// Handler wiring
//

// Services bundles the dependencies of Handlers. Idempotency may be nil, in
// which case Idempotency-Key headers are validated but not honored.
type Services struct {
	Organizations OrganizationService
	Projects      ProjectService
	Tasks         TaskService
	Comments      CommentService
	Logs          IntegrationLogService
	Settings      SettingsService
	Integrations  IntegrationService
	Idempotency   IdempotencyStore
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	orgSvc      OrganizationService
	projectSvc  ProjectService
	taskSvc     TaskService
	commentSvc  CommentService
	logSvc      IntegrationLogService
	settingsSvc SettingsService
	integSvc    IntegrationService
	idem        IdempotencyStore
}

// New constructs Handlers bound to s.
func New(s Services) *Handlers {
	return &Handlers{
		orgSvc:      s.Organizations,
		projectSvc:  s.Projects,
		taskSvc:     s.Tasks,
		commentSvc:  s.Comments,
		logSvc:      s.Logs,
		settingsSvc: s.Settings,
		integSvc:    s.Integrations,
		idem:        s.Idempotency,
	}
}

//
// Idempotency
//

// DBIdempotency is the gorm-backed IdempotencyStore.
type DBIdempotency struct {
	DB  *gorm.DB
	TTL time.Duration
}

// Lookup implements IdempotencyStore.
func (s DBIdempotency) Lookup(ctx context.Context, userID, scope, key string) (*domain.Idempotency, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// Save implements IdempotencyStore. A concurrent save of the same key is
// not an error.
func (s DBIdempotency) Save(ctx context.Context, userID, scope, key string, resourceID uint, status int) error {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, resourceID, status, ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// Exists adapts the store to middleware.IdempotencyLookup.
func (s DBIdempotency) Exists(ctx context.Context, userID, scope, key string, _ time.Time) (bool, error) {
	rec, err := s.Lookup(ctx, userID, scope, key)
	return rec != nil, err
}

// replayed looks up a stored record for the current request. It returns nil
// when the request carries no key, when no store is configured, or when
// nothing was recorded.
func (h *Handlers) replayed(c *gin.Context) *domain.Idempotency {
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok || h.idem == nil {
		return nil
	}
	rec, err := h.idem.Lookup(c.Request.Context(), middleware.UserID(c), middleware.IdempotencyScope(c), key)
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		return nil
	}
	return rec
}

// remember stores the created resource under the request's key. Failures
// are logged; the write already happened.
func (h *Handlers) remember(c *gin.Context, resourceID uint, status int) {
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok || h.idem == nil {
		return
	}
	if err := h.idem.Save(c.Request.Context(), middleware.UserID(c), middleware.IdempotencyScope(c), key, resourceID, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency save failed")
	}
}

func replay(c *gin.Context, rec *domain.Idempotency, body any) {
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	status := rec.Status
	if status == 0 {
		status = http.StatusCreated
	}
	ok(c, status, body)
}
