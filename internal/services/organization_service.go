// Package services – OrganizationService and ProjectService
//
// These services own the tenant and project lifecycle used by the task
// triggers: creation with validation and lookups that map missing rows to
// service-level sentinels.
package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// OrganizationService creates and fetches organizations.
type OrganizationService struct {
	DB *gorm.DB
}

// NewOrganizationService constructs an OrganizationService over db.
func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{DB: db}
}

// CreateOrganizationInput carries the fields of a new organization. Slug is
// derived from Name when empty.
type CreateOrganizationInput struct {
	Name         string
	Slug         string
	ContactEmail string
}

// Create validates in and inserts the organization.
//
// Errors: ErrEmptyName, ErrInvalidEmail, ErrDuplicateSlug, or the DB error.
func (s *OrganizationService) Create(ctx context.Context, in CreateOrganizationInput) (*domain.Organization, error) {
	ctx, span := otel.Tracer("services/OrganizationService").Start(ctx, "Create")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" || (domain.Slugify(name) == "" && domain.Slugify(in.Slug) == "") {
		return nil, ErrEmptyName
	}
	email, err := normalizeEmail(in.ContactEmail)
	if err != nil || email == "" {
		return nil, ErrInvalidEmail
	}
	org := &domain.Organization{
		Name:         name,
		Slug:         domain.Slugify(in.Slug),
		ContactEmail: email,
	}
	if err := repo.CreateOrganization(ctx, s.DB, org); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("organization.id", int64(org.ID)))
	return org, nil
}

// Get returns the organization with id or ErrOrganizationNotFound.
func (s *OrganizationService) Get(ctx context.Context, id uint) (*domain.Organization, error) {
	ctx, span := otel.Tracer("services/OrganizationService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("organization.id", int64(id))))
	defer span.End()

	org, err := repo.GetOrganization(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrOrganizationNotFound)
	}
	return org, nil
}

// ProjectService creates and fetches projects.
type ProjectService struct {
	DB *gorm.DB
}

// NewProjectService constructs a ProjectService over db.
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

// CreateProjectInput carries the fields of a new project. An empty Status
// means ACTIVE.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	DueDate     *time.Time
}

// Create inserts a project under orgID.
//
// Errors: ErrEmptyName, ErrInvalidStatus, ErrOrganizationNotFound, or the DB error.
func (s *ProjectService) Create(ctx context.Context, orgID uint, in CreateProjectInput) (*domain.Project, error) {
	ctx, span := otel.Tracer("services/ProjectService").Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("organization.id", int64(orgID))))
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	status := in.Status
	if status == "" {
		status = domain.ProjectActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	p := &domain.Project{
		OrganizationID: orgID,
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		Status:         status,
		DueDate:        utcPtr(in.DueDate),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetOrganization(ctx, tx, orgID); err != nil {
			return notFound(err, ErrOrganizationNotFound)
		}
		return repo.CreateProject(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the project with id, organization preloaded, or ErrProjectNotFound.
func (s *ProjectService) Get(ctx context.Context, id uint) (*domain.Project, error) {
	ctx, span := otel.Tracer("services/ProjectService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("project.id", int64(id))))
	defer span.End()

	p, err := repo.GetProject(ctx, s.DB, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return p, nil
}

// normalizeEmail trims and validates addr. Empty input is returned as is.
func normalizeEmail(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", nil
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(parsed.Address), nil
}
