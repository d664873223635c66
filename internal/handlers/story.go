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

// StoryHandler coordinates user story HTTP handlers.
type StoryHandler struct {
	backlogService *services.BacklogService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(backlogService *services.BacklogService) *StoryHandler {
	return &StoryHandler{
		backlogService: backlogService,
	}
}

// CreateStory creates a backlog story in the project resolved by
// RequireProjectAccess.
func (h *StoryHandler) CreateStory(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateStoryRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	story, err := h.backlogService.CreateStory(services.CreateStoryInput{
		ActorID:     userID,
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondStoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStoryDTO(*story))
}

// UpdateStory edits a story's title, description or status. Owner-only.
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid story ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateStoryRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	var req UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateStoryInput{
		ActorID:     userID,
		StoryID:     storyID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	story, err := h.backlogService.UpdateStory(input)
	if err != nil {
		respondStoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoryDTO(*story))
}

// DeleteStory deletes a story. Owner-only.
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid story ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.backlogService.DeleteStory(userID, storyID); err != nil {
		respondStoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User story deleted successfully",
	})
}

func respondStoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.AccessDenied(c, "")
	case errors.Is(err, services.ErrStoryNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestCode(c, apierrors.ErrCodeInvalidStatus, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
