// On-demand integration handlers.
//
//   - POST /admin/integrations/selftest?service=all|mail|chat
//   - POST /admin/integrations/overdue-reminders
//   - POST /admin/organizations/{id}/digest
//   - POST /admin/projects/{id}/updates
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProjectUpdateRequest carries the announcement posted to the project's
// organization channel.
type ProjectUpdateRequest struct {
	Message string `json:"message" binding:"required" example:"Beta is live on staging"`
}

// SelfTest godoc
// @ID          integrationSelfTest
// @Summary     Run the integration self-test
// @Description Exercises the notification services against existing data without writing logs. Responds 200 when every check passed or was skipped and 500 otherwise; the report is returned either way.
// @Tags        Admin
// @Produce     json
// @Param       service  query  string  false  "Scope"  Enums(all,mail,chat) default(all)
// @Success     200  {object}  integrations.SelfTestReport
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown scope"
// @Failure     500  {object}  integrations.SelfTestReport  "At least one check failed"
// @Router      /admin/integrations/selftest [post]
func (h *Handlers) SelfTest(c *gin.Context) {
	rep, err := h.integSvc.SelfTest(c.Request.Context(), c.Query("service"))
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusOK
	if rep.Failed() {
		status = http.StatusInternalServerError
	}
	ok(c, status, rep)
}

// SendOverdueReminders godoc
// @ID          sendOverdueReminders
// @Summary     Mail reminders for overdue tasks
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  integrations.ReminderReport
// @Failure     409  {object}  handlers.ErrorResponse  "mock_mail disabled"
// @Router      /admin/integrations/overdue-reminders [post]
func (h *Handlers) SendOverdueReminders(c *gin.Context) {
	rep, err := h.integSvc.SendOverdueReminders(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, rep)
}

// PostDailyDigest godoc
// @ID          postDailyDigest
// @Summary     Post an organization's daily digest to chat
// @Tags        Admin
// @Produce     json
// @Param       id  path  int  true  "Organization ID"  minimum(1)
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  handlers.ErrorResponse  "Organization not found"
// @Failure     409  {object}  handlers.ErrorResponse  "mock_chat disabled"
// @Router      /admin/organizations/{id}/digest [post]
func (h *Handlers) PostDailyDigest(c *gin.Context) {
	orgID, valid := pathID(c, "id")
	if !valid {
		return
	}
	res, err := h.integSvc.PostDailyDigest(c.Request.Context(), orgID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// PostProjectUpdate godoc
// @ID          postProjectUpdate
// @Summary     Announce a project update in chat
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       id    path  int  true  "Project ID"  minimum(1)
// @Param       body  body  handlers.ProjectUpdateRequest  true  "Announcement"
// @Success     200  {object}  map[string]any
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Project not found"
// @Failure     409  {object}  handlers.ErrorResponse  "mock_chat disabled"
// @Router      /admin/projects/{id}/updates [post]
func (h *Handlers) PostProjectUpdate(c *gin.Context) {
	projectID, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message is required")
		return
	}
	res, err := h.integSvc.PostProjectUpdate(c.Request.Context(), projectID, req.Message)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
