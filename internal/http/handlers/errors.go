// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them rather
// than on messages. Generic codes mirror HTTP status semantics; the rest
// name integration-specific outcomes. failErr maps service sentinels to a
// status and code in one place.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "task not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pm-backend/internal/integrations"
	"github.com/tbourn/go-pm-backend/internal/services"
)

const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeConflict   = "conflict"
	ErrCodeInternal   = "internal_error"

	// Domain-specific:
	ErrCodeValidation       = "validation_failed"
	ErrCodeInvalidFilter    = "invalid_filter"
	ErrCodeServiceDisabled  = "service_disabled"
	ErrCodeDispatchFailed   = "dispatch_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// failErr writes the envelope matching err. Unknown errors become 500s.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrLogNotFound),
		errors.Is(err, services.ErrSettingNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrInvalidService),
		errors.Is(err, services.ErrEmptyErrorMessage),
		errors.Is(err, services.ErrNoIDs),
		errors.Is(err, services.ErrInvalidRetention),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, integrations.ErrUnknownScope):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())

	case errors.Is(err, services.ErrDuplicateSlug):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, integrations.ErrServiceDisabled):
		fail(c, http.StatusConflict, ErrCodeServiceDisabled, err.Error())

	case errors.Is(err, integrations.ErrMissingEntity):
		fail(c, http.StatusBadGateway, ErrCodeDispatchFailed, err.Error())

	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
