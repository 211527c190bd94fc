// Task and comment HTTP handlers.
//
//   - POST  /projects/{id}/tasks   (Idempotency-Key supported)
//   - GET   /tasks/{id}
//   - PATCH /tasks/{id}
//   - POST  /tasks/{id}/comments   (Idempotency-Key supported)
//   - GET   /tasks/{id}/comments
//
// Every committed write fires the integration reactions inside the task
// service; a replayed POST returns the recorded resource and fires nothing.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/services"
	"github.com/tbourn/go-pm-backend/internal/utils"
)

// CreateTaskRequest is the JSON payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Design Review"`
	Description string `json:"description" example:"Review the new landing page"`
	// Status defaults to TODO.
	Status        string `json:"status" example:"TODO" enums:"TODO,IN_PROGRESS,DONE"`
	AssigneeEmail string `json:"assignee_email" example:"alice@acme.test"`
	DueDate       string `json:"due_date" example:"2025-10-01T17:00:00Z"`
}

// UpdateTaskRequest is the JSON payload for a partial task update. Absent
// fields are left alone; an empty assignee_email unassigns and an empty
// due_date clears the due date.
type UpdateTaskRequest struct {
	Title         *string `json:"title" example:"Design Review v2"`
	Description   *string `json:"description"`
	Status        *string `json:"status" example:"DONE" enums:"TODO,IN_PROGRESS,DONE"`
	AssigneeEmail *string `json:"assignee_email" example:"bob@acme.test"`
	DueDate       *string `json:"due_date" example:"2025-10-08"`
}

// AddCommentRequest is the JSON payload for commenting on a task.
type AddCommentRequest struct {
	Content     string `json:"content" binding:"required" example:"Looks good to me"`
	AuthorEmail string `json:"author_email" binding:"required" example:"carol@acme.test"`
}

// ListCommentsResponse wraps a task's comments, oldest first.
type ListCommentsResponse struct {
	Comments []domain.TaskComment `json:"comments"`
}

func parseTaskStatus(raw string) domain.TaskStatus {
	return domain.TaskStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// CreateTask godoc
// @ID          createTask
// @Summary     Create a task in a project
// @Description Creates a task and notifies the assignee. Supports idempotent retries via Idempotency-Key; a replay returns the original task with Idempotency-Replayed: true.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false  "User ID"  example(user123)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id               path    int     true   "Project ID"  minimum(1)
// @Param       body             body    handlers.CreateTaskRequest  true  "Task payload"
// @Success     201  {object}  domain.Task
// @Header      201  {string}  Idempotency-Replayed  "true when the response is a replay"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Project not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /projects/{id}/tasks [post]
func (h *Handlers) CreateTask(c *gin.Context) {
	projectID, valid := pathID(c, "id")
	if !valid {
		return
	}
	ctx := c.Request.Context()

	if rec := h.replayed(c); rec != nil {
		if prev, err := h.taskSvc.Get(ctx, rec.ResourceID); err == nil {
			replay(c, rec, prev)
			return
		}
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title is required")
		return
	}
	due, err := utils.ParseTime(req.DueDate)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "due_date: "+err.Error())
		return
	}

	task, err := h.taskSvc.Create(ctx, projectID, services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        parseTaskStatus(req.Status),
		AssigneeEmail: req.AssigneeEmail,
		DueDate:       due,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, task.ID, http.StatusCreated)
	ok(c, http.StatusCreated, task)
}

// GetTask godoc
// @ID          getTask
// @Summary     Get a task
// @Tags        Tasks
// @Produce     json
// @Param       id  path  int  true  "Task ID"  minimum(1)
// @Success     200  {object}  domain.Task
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Router      /tasks/{id} [get]
func (h *Handlers) GetTask(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	task, err := h.taskSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

// UpdateTask godoc
// @ID          updateTask
// @Summary     Update a task
// @Description Applies a partial update. Status and assignee changes notify the integrations.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       id    path  int  true  "Task ID"  minimum(1)
// @Param       body  body  handlers.UpdateTaskRequest  true  "Fields to change"
// @Success     200  {object}  domain.Task
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tasks/{id} [patch]
func (h *Handlers) UpdateTask(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	patch := services.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeEmail: req.AssigneeEmail,
	}
	if req.Status != nil {
		st := parseTaskStatus(*req.Status)
		patch.Status = &st
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			patch.ClearDueDate = true
		} else {
			due, err := utils.ParseTime(*req.DueDate)
			if err != nil {
				fail(c, http.StatusBadRequest, ErrCodeValidation, "due_date: "+err.Error())
				return
			}
			patch.DueDate = due
		}
	}

	task, err := h.taskSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

// AddComment godoc
// @ID          addComment
// @Summary     Comment on a task
// @Description Stores a comment and mails the assignee. Supports idempotent retries via Idempotency-Key.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false  "User ID"  example(user123)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       id               path    int     true   "Task ID"  minimum(1)
// @Param       body             body    handlers.AddCommentRequest  true  "Comment payload"
// @Success     201  {object}  domain.TaskComment
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tasks/{id}/comments [post]
func (h *Handlers) AddComment(c *gin.Context) {
	taskID, valid := pathID(c, "id")
	if !valid {
		return
	}
	ctx := c.Request.Context()

	if rec := h.replayed(c); rec != nil {
		if comments, err := h.commentSvc.List(ctx, taskID); err == nil {
			for i := range comments {
				if comments[i].ID == rec.ResourceID {
					replay(c, rec, comments[i])
					return
				}
			}
		}
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content and author_email are required")
		return
	}
	comment, err := h.commentSvc.Add(ctx, taskID, services.AddCommentInput{
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, comment.ID, http.StatusCreated)
	ok(c, http.StatusCreated, comment)
}

// ListComments godoc
// @ID          listComments
// @Summary     List a task's comments
// @Tags        Comments
// @Produce     json
// @Param       id  path  int  true  "Task ID"  minimum(1)
// @Success     200  {object}  handlers.ListCommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Task not found"
// @Router      /tasks/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	taskID, valid := pathID(c, "id")
	if !valid {
		return
	}
	comments, err := h.commentSvc.List(c.Request.Context(), taskID)
	if err != nil {
		failErr(c, err)
		return
	}
	if comments == nil {
		comments = []domain.TaskComment{}
	}
	ok(c, http.StatusOK, ListCommentsResponse{Comments: comments})
}
