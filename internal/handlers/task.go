package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/dto"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/middleware"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/services"
	"github.com/yukikurage/supertask-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks.
// Supports priority, status, category, due_date (today|overdue), ordering, page and limit.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		UserID:   userID,
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		DueDate:  c.Query("due_date"),
		Ordering: c.Query("ordering"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, h.taskService.Today(), params, total))
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTaskOwnership middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task, h.taskService.Today()))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	input := services.CreateTaskInput{
		UserID: userID,
		Title:  req.Title,
		Category: services.CategoryRef{
			ID:   req.Category,
			Name: req.CategoryName,
		},
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Priority != nil {
		input.Priority = models.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		input.Status = models.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		dueDate, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, apierrors.MsgInvalidDueDate)
			return
		}
		input.DueDate = &dueDate
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, h.taskService.Today()))
}

// ReplaceTask handles PUT: title is required, other absent fields are kept
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	h.updateTask(c, true)
}

// UpdateTask handles PATCH
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	h.updateTask(c, false)
}

func (h *TaskHandler) updateTask(c *gin.Context, requireTitle bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	input, msgID := buildUpdateTaskInput(req, raw, requireTitle)
	if msgID != "" {
		apierrors.BadRequest(c, msgID)
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), userID, task.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated, h.taskService.Today()))
}

// buildUpdateTaskInput turns a decoded update body into service input. It
// returns a message ID when the body is invalid.
func buildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, requireTitle bool) (services.UpdateTaskInput, string) {
	var input services.UpdateTaskInput

	if hasJSONField(raw, "title") || requireTitle {
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			return input, apierrors.MsgTitleRequired
		}
		input.Title = req.Title
	}

	if hasJSONField(raw, "description") {
		description := ""
		if req.Description != nil {
			description = *req.Description
		}
		input.Description = &description
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return input, apierrors.MsgInvalidPriority
		}
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return input, apierrors.MsgInvalidStatus
		}
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	if hasJSONField(raw, "due_date") {
		if req.DueDate == nil {
			input.ClearDueDate = true
		} else {
			dueDate, err := utils.ParseDate(*req.DueDate)
			if err != nil {
				return input, apierrors.MsgInvalidDueDate
			}
			input.DueDate = &dueDate
		}
	}

	switch {
	case hasJSONField(raw, "category") && !isJSONNull(raw, "category"):
		input.Category.ID = req.Category
	case hasJSONField(raw, "category"):
		input.ClearCategory = true
	case hasJSONField(raw, "category_name"):
		if req.CategoryName == nil || strings.TrimSpace(*req.CategoryName) == "" {
			input.ClearCategory = true
		} else {
			input.Category.Name = req.CategoryName
		}
	}

	return input, ""
}

// ToggleTaskStatus flips a task between completed and pending
func (h *TaskHandler) ToggleTaskStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	toggled, err := h.taskService.ToggleTask(c.Request.Context(), userID, task.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*toggled, h.taskService.Today()))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, task.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

