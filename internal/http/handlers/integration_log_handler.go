// Integration log admin handlers.
//
//   - GET    /admin/integration-logs               (filtered, paginated, weak ETag)
//   - GET    /admin/integration-logs/{id}
//   - POST   /admin/integration-logs/{id}/mark-success
//   - POST   /admin/integration-logs/{id}/mark-failed
//   - POST   /admin/integration-logs/bulk-status
//   - DELETE /admin/integration-logs?older_than_days=N
package handlers

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/utils"
)

// ListLogsResponse wraps a page of integration logs and pagination information.
type ListLogsResponse struct {
	Logs       []domain.IntegrationLog `json:"logs"`
	Pagination Pagination              `json:"pagination"`
}

// MarkSuccessRequest optionally replaces the row's response data.
type MarkSuccessRequest struct {
	ResponseData domain.JSONMap `json:"response_data" swaggertype:"object"`
}

// MarkFailedRequest carries the failure reason.
type MarkFailedRequest struct {
	ErrorMessage string `json:"error_message" example:"SMTP timeout"`
}

// BulkStatusRequest sets the status of several rows at once.
type BulkStatusRequest struct {
	IDs    []uint `json:"ids" example:"1,2,3"`
	Status string `json:"status" example:"retrying" enums:"success,failed,pending,retrying"`
}

// CountResponse reports how many rows an admin action touched.
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// parseLogFilter reads the list filters from the query string. Enum values
// are validated here so storage never sees an unknown string.
func parseLogFilter(c *gin.Context) (repo.LogFilter, error) {
	var f repo.LogFilter
	if v := c.Query("service"); v != "" {
		svc, err := domain.ParseService(v)
		if err != nil {
			return f, err
		}
		f.Service = svc
	}
	if v := c.Query("event_type"); v != "" {
		ev, err := domain.ParseEventType(v)
		if err != nil {
			return f, err
		}
		f.EventType = ev
	}
	if v := c.Query("status"); v != "" {
		st, err := domain.ParseLogStatus(v)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	for name, dst := range map[string]**uint{"task_id": &f.TaskID, "project_id": &f.ProjectID} {
		if v := c.Query(name); v != "" {
			id, err := utils.ParseID(v)
			if err != nil {
				return f, fmt.Errorf("%s: %w", name, err)
			}
			*dst = &id
		}
	}
	var err error
	if f.From, err = utils.ParseTime(c.Query("from")); err != nil {
		return f, fmt.Errorf("from: %w", err)
	}
	if f.To, err = utils.ParseTime(c.Query("to")); err != nil {
		return f, fmt.Errorf("to: %w", err)
	}
	f.Query = strings.TrimSpace(c.Query("q"))
	return f, nil
}

// logsETag derives a weak validator from the filtered row count, the newest
// update and the exact query string.
func logsETag(count int64, maxUpdatedUnixNano int64, rawQuery string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rawQuery))
	return fmt.Sprintf(`W/"integration-logs:%d:%d:%08x"`, count, maxUpdatedUnixNano, h.Sum32())
}

// ListIntegrationLogs godoc
// @ID          listIntegrationLogs
// @Summary     List integration logs
// @Description Returns a filtered page of logs, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Admin
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       service        query   string  false  "Service"     Enums(mock_mail,mock_chat,mail,chat,integration_orchestrator)
// @Param       event_type     query   string  false  "Event type"
// @Param       status         query   string  false  "Status"      Enums(success,failed,pending,retrying)
// @Param       task_id        query   int     false  "Task ID"
// @Param       project_id     query   int     false  "Project ID"
// @Param       from           query   string  false  "Created at or after (RFC3339 or YYYY-MM-DD)"
// @Param       to             query   string  false  "Created before (RFC3339 or YYYY-MM-DD)"
// @Param       q              query   string  false  "Substring of recipient, subject or error message"
// @Param       page           query   int     false  "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListLogsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid filter"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/integration-logs [get]
func (h *Handlers) ListIntegrationLogs(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := parseLogFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidFilter, err.Error())
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, maxTS, err := h.logSvc.Stats(ctx, f); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := logsETag(count, ts, c.Request.URL.RawQuery)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.logSvc.ListPage(ctx, f, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	if items == nil {
		items = []domain.IntegrationLog{}
	}
	ok(c, http.StatusOK, ListLogsResponse{
		Logs:       items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetIntegrationLog godoc
// @ID          getIntegrationLog
// @Summary     Get one integration log row
// @Tags        Admin
// @Produce     json
// @Param       id  path  int  true  "Log ID"  minimum(1)
// @Success     200  {object}  domain.IntegrationLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Log not found"
// @Router      /admin/integration-logs/{id} [get]
func (h *Handlers) GetIntegrationLog(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	l, err := h.logSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// MarkLogSuccess godoc
// @ID          markIntegrationLogSuccess
// @Summary     Mark a log row successful
// @Description Sets status to success and clears the error message. A body with response_data replaces the stored response.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       id    path  int  true   "Log ID"  minimum(1)
// @Param       body  body  handlers.MarkSuccessRequest  false  "Optional response data"
// @Success     200  {object}  domain.IntegrationLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Log not found"
// @Router      /admin/integration-logs/{id}/mark-success [post]
func (h *Handlers) MarkLogSuccess(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req MarkSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	l, err := h.logSvc.MarkSuccess(c.Request.Context(), id, req.ResponseData)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// MarkLogFailed godoc
// @ID          markIntegrationLogFailed
// @Summary     Mark a log row failed
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       id    path  int  true  "Log ID"  minimum(1)
// @Param       body  body  handlers.MarkFailedRequest  true  "Failure reason"
// @Success     200  {object}  domain.IntegrationLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Log not found"
// @Router      /admin/integration-logs/{id}/mark-failed [post]
func (h *Handlers) MarkLogFailed(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req MarkFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "error_message is required")
		return
	}
	l, err := h.logSvc.MarkFailed(c.Request.Context(), id, req.ErrorMessage)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// BulkUpdateLogStatus godoc
// @ID          bulkUpdateIntegrationLogStatus
// @Summary     Set the status of several log rows
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.BulkStatusRequest  true  "IDs and target status"
// @Success     200  {object}  handlers.CountResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/integration-logs/bulk-status [post]
func (h *Handlers) BulkUpdateLogStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	status, err := domain.ParseLogStatus(req.Status)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	n, err := h.logSvc.BulkUpdateStatus(c.Request.Context(), req.IDs, status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// PurgeIntegrationLogs godoc
// @ID          purgeIntegrationLogs
// @Summary     Delete old integration logs
// @Description Deletes rows created more than older_than_days days ago. Without the parameter the configured retention applies.
// @Tags        Admin
// @Produce     json
// @Param       older_than_days  query  int  false  "Age threshold in days"  minimum(1)
// @Success     200  {object}  handlers.CountResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/integration-logs [delete]
func (h *Handlers) PurgeIntegrationLogs(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("older_than_days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, ErrCodeValidation, "older_than_days must be a positive integer")
			return
		}
		days = n
	}
	n, err := h.logSvc.Purge(c.Request.Context(), days)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}
