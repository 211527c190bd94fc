// Organization and project HTTP handlers.
//
//   - POST /organizations
//   - GET  /organizations/{id}
//   - POST /organizations/{id}/projects
//   - GET  /projects/{id}
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/services"
	"github.com/tbourn/go-pm-backend/internal/utils"
)

// CreateOrganizationRequest is the JSON payload for creating an organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Acme Corp"`
	// Slug is derived from Name when empty.
	Slug         string `json:"slug" binding:"max=120" example:"acme-corp"`
	ContactEmail string `json:"contact_email" binding:"required" example:"ops@acme.test"`
}

// CreateProjectRequest is the JSON payload for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Website Redesign"`
	Description string `json:"description" example:"Q3 refresh of the marketing site"`
	// Status defaults to ACTIVE.
	Status  string `json:"status" example:"ACTIVE" enums:"ACTIVE,COMPLETED,ON_HOLD"`
	DueDate string `json:"due_date" example:"2025-12-31"`
}

// CreateOrganization godoc
// @ID          createOrganization
// @Summary     Create an organization
// @Tags        Organizations
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateOrganizationRequest  true  "Organization payload"
// @Success     201  {object}  domain.Organization
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Slug already taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations [post]
func (h *Handlers) CreateOrganization(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and contact_email are required")
		return
	}
	org, err := h.orgSvc.Create(c.Request.Context(), services.CreateOrganizationInput{
		Name:         req.Name,
		Slug:         req.Slug,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, org)
}

// GetOrganization godoc
// @ID          getOrganization
// @Summary     Get an organization
// @Tags        Organizations
// @Produce     json
// @Param       id  path  int  true  "Organization ID"  minimum(1)
// @Success     200  {object}  domain.Organization
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Organization not found"
// @Router      /organizations/{id} [get]
func (h *Handlers) GetOrganization(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	org, err := h.orgSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, org)
}

// CreateProject godoc
// @ID          createProject
// @Summary     Create a project in an organization
// @Tags        Projects
// @Accept      json
// @Produce     json
// @Param       id    path  int  true  "Organization ID"  minimum(1)
// @Param       body  body  handlers.CreateProjectRequest  true  "Project payload"
// @Success     201  {object}  domain.Project
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Organization not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /organizations/{id}/projects [post]
func (h *Handlers) CreateProject(c *gin.Context) {
	orgID, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name is required")
		return
	}
	due, err := utils.ParseTime(req.DueDate)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "due_date: "+err.Error())
		return
	}
	p, err := h.projectSvc.Create(c.Request.Context(), orgID, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		DueDate:     due,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetProject godoc
// @ID          getProject
// @Summary     Get a project
// @Tags        Projects
// @Produce     json
// @Param       id  path  int  true  "Project ID"  minimum(1)
// @Success     200  {object}  domain.Project
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Project not found"
// @Router      /projects/{id} [get]
func (h *Handlers) GetProject(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := h.projectSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
