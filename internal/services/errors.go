// Package services defines the business logic for organizations, projects,
// tasks, comments and the integration admin surface. This file centralizes
// the service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/tbourn/go-pm-backend/internal/repo"
)

// Not-found errors.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrLogNotFound          = errors.New("integration log not found")
	ErrSettingNotFound      = errors.New("integration setting not found")
)

// Validation errors.
var (
	// ErrEmptyName is returned when an organization or project has no name.
	ErrEmptyName = errors.New("name is empty")

	// ErrInvalidEmail is returned for addresses that do not parse.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrDuplicateSlug is returned when an organization slug is taken.
	ErrDuplicateSlug = errors.New("organization slug already exists")

	// ErrEmptyTitle is returned when a task has no title.
	ErrEmptyTitle = errors.New("task title is empty")

	// ErrInvalidStatus is returned for task, project or log statuses outside
	// their closed sets.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyComment is returned when a comment has no content.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrInvalidService is returned for names that cannot own a settings row.
	ErrInvalidService = errors.New("invalid integration service")

	// ErrEmptyErrorMessage is returned when a log is marked failed without a
	// reason.
	ErrEmptyErrorMessage = errors.New("error message is empty")

	// ErrNoIDs is returned by bulk operations called with no ids.
	ErrNoIDs = errors.New("no ids given")

	// ErrInvalidRetention is returned by purges with a non-positive age.
	ErrInvalidRetention = errors.New("retention must be at least one day")

	// ErrEmptyMessage is returned when a project update has no text.
	ErrEmptyMessage = errors.New("message is empty")
)

// notFound maps repo.ErrNotFound to sentinel and passes other errors through.
func notFound(err, sentinel error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return sentinel
	}
	return err
}
