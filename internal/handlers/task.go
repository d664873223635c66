package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard/sprintboard/internal/dto"
	apierrors "github.com/sprintboard/sprintboard/internal/errors"
	"github.com/sprintboard/sprintboard/internal/middleware"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/services"
)

// TaskHandler coordinates task HTTP handlers, including the kanban board.
type TaskHandler struct {
	backlogService *services.BacklogService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(backlogService *services.BacklogService) *TaskHandler {
	return &TaskHandler{
		backlogService: backlogService,
	}
}

// CreateTask creates a task in the project resolved by RequireProjectAccess.
// The task may optionally start inside a sprint and with an assignee.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		SprintID    *uint64 `json:"sprint_id"`
		AssigneeID  *uint64 `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	task, err := h.backlogService.CreateTask(services.CreateTaskInput{
		ActorID:     userID,
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		SprintID:    req.SprintID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask edits a task. Owner-only. A JSON null for sprint_id or
// assignee_id clears the reference; an absent key leaves it untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		ActorID: userID,
		TaskID:  taskID,
	}

	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if desc, ok := rawReq["description"].(string); ok {
		input.Description = &desc
	}
	if statusStr, ok := rawReq["status"].(string); ok {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}
	if raw, ok := rawReq["sprint_id"]; ok {
		if raw == nil {
			input.ClearSprint = true
		} else if f, ok := raw.(float64); ok {
			id := uint64(f)
			input.SprintID = &id
		}
	}
	if raw, ok := rawReq["assignee_id"]; ok {
		if raw == nil {
			input.ClearAssignee = true
		} else if f, ok := raw.(float64); ok {
			id := uint64(f)
			input.AssigneeID = &id
		}
	}

	task, err := h.backlogService.UpdateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task. Owner-only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.backlogService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SetTaskStatus moves a task between the three board columns.
func (h *TaskHandler) SetTaskStatus(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SetStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.backlogService.SetTaskStatus(userID, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GetBoard returns the project's kanban columns. Access is checked by
// RequireProjectAccess.
func (h *TaskHandler) GetBoard(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)
	board, err := h.backlogService.GetBoard(userID, project.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(board.Todo, board.Doing, board.Done))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.AccessDenied(c, "")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrSprintNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestCode(c, apierrors.ErrCodeInvalidStatus, err.Error())
	case errors.Is(err, services.ErrCrossProjectAssignment):
		apierrors.BadRequestCode(c, apierrors.ErrCodeCrossProjectAssignment, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
