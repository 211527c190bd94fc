// Integration settings admin handlers.
//
//   - GET   /admin/integration-settings
//   - GET   /admin/integration-settings/{name}
//   - PATCH /admin/integration-settings/{name}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/services"
)

// ListSettingsResponse wraps every settings row.
type ListSettingsResponse struct {
	Settings []domain.IntegrationSettings `json:"settings"`
}

// UpdateSettingsRequest is a partial settings update. A present
// configuration replaces the stored one.
type UpdateSettingsRequest struct {
	IsEnabled     *bool          `json:"is_enabled" example:"false"`
	IsMockMode    *bool          `json:"is_mock_mode" example:"true"`
	Configuration domain.JSONMap `json:"configuration" swaggertype:"object"`
}

// ListSettings godoc
// @ID          listIntegrationSettings
// @Summary     List integration settings
// @Tags        Admin
// @Produce     json
// @Success     200  {object}  handlers.ListSettingsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/integration-settings [get]
func (h *Handlers) ListSettings(c *gin.Context) {
	rows, err := h.settingsSvc.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if rows == nil {
		rows = []domain.IntegrationSettings{}
	}
	ok(c, http.StatusOK, ListSettingsResponse{Settings: rows})
}

// GetSettings godoc
// @ID          getIntegrationSettings
// @Summary     Get the settings of one service
// @Tags        Admin
// @Produce     json
// @Param       name  path  string  true  "Service name"  Enums(mock_mail,mock_chat,mail,chat)
// @Success     200  {object}  domain.IntegrationSettings
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown service"
// @Failure     404  {object}  handlers.ErrorResponse  "No settings row"
// @Router      /admin/integration-settings/{name} [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	row, err := h.settingsSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, row)
}

// UpdateSettings godoc
// @ID          updateIntegrationSettings
// @Summary     Update the settings of one service
// @Description Changes apply to the next dispatched event.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       name  path  string  true  "Service name"  Enums(mock_mail,mock_chat,mail,chat)
// @Param       body  body  handlers.UpdateSettingsRequest  true  "Fields to change"
// @Success     200  {object}  domain.IntegrationSettings
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No settings row"
// @Router      /admin/integration-settings/{name} [patch]
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	row, err := h.settingsSvc.Update(c.Request.Context(), c.Param("name"), services.SettingsPatch{
		IsEnabled:     req.IsEnabled,
		IsMockMode:    req.IsMockMode,
		Configuration: req.Configuration,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, row)
}
