package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// dueDate arrives as a string so that an explicit "" can clear the field on
// update. Both RFC3339 and plain dates are accepted.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDueDate(raw string) (*time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// taskID maps the :id path parameter. A non-numeric id cannot name an
// existing task, so it reports NotFound rather than a distinct error shape.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return 0, false
	}
	return id, true
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	user, _ := middleware.Identity(c)

	params := models.ListParams{
		Page:   c.Query("page"),
		Limit:  c.Query("limit"),
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}

	tasks, pagination, err := h.service.List(c.Request.Context(), user.ID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "pagination": pagination})
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	user, _ := middleware.Identity(c)
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	user, _ := middleware.Identity(c)

	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     string              `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := models.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != "" {
		due, ok := parseDueDate(req.DueDate)
		if !ok {
			respondError(c, &services.ValidationError{Fields: []services.FieldError{
				{Field: "dueDate", Msg: "Invalid date"},
			}})
			return
		}
		in.DueDate = due
	}

	task, err := h.service.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	user, _ := middleware.Identity(c)
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
		DueDate     *string              `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := models.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			in.ClearDueDate = true
		} else {
			due, ok := parseDueDate(*req.DueDate)
			if !ok {
				respondError(c, &services.ValidationError{Fields: []services.FieldError{
					{Field: "dueDate", Msg: "Invalid date"},
				}})
				return
			}
			in.DueDate = due
		}
	}

	task, err := h.service.Update(c.Request.Context(), user.ID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	user, _ := middleware.Identity(c)
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

// GET /tasks/dashboard
func (h *TaskHandler) Dashboard(c *gin.Context) {
	user, _ := middleware.Identity(c)

	dashboard, err := h.service.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
