package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard/sprintboard/internal/dto"
	apierrors "github.com/sprintboard/sprintboard/internal/errors"
	"github.com/sprintboard/sprintboard/internal/middleware"
	"github.com/sprintboard/sprintboard/internal/services"
)

// SprintHandler coordinates sprint HTTP handlers.
type SprintHandler struct {
	sprintService  *services.SprintService
	backlogService *services.BacklogService
}

// NewSprintHandler creates a new SprintHandler.
func NewSprintHandler(sprintService *services.SprintService, backlogService *services.BacklogService) *SprintHandler {
	return &SprintHandler{
		sprintService:  sprintService,
		backlogService: backlogService,
	}
}

// CreateSprint creates a sprint in the project resolved by
// RequireProjectAccess.
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateSprintRequest struct {
		Name      string `json:"name" binding:"required"`
		Goal      string `json:"goal"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	sprint, err := h.sprintService.CreateSprint(services.CreateSprintInput{
		ActorID:   userID,
		ProjectID: project.ID,
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSprintDTO(*sprint))
}

// GetSprint returns the sprint details view: assigned stories and the
// backlog stories available for assignment.
func (h *SprintHandler) GetSprint(c *gin.Context) {
	sprintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sprint ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	details, err := h.sprintService.GetSprintDetails(userID, sprintID)
	if err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintDetailDTO(*details.Sprint, details.SprintStories, details.AvailableStories))
}

// UpdateSprint edits a sprint's name, goal or dates.
func (h *SprintHandler) UpdateSprint(c *gin.Context) {
	sprintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sprint ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateSprintRequest struct {
		Name      *string `json:"name"`
		Goal      *string `json:"goal"`
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
	}

	var req UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sprint, err := h.sprintService.UpdateSprint(services.UpdateSprintInput{
		ActorID:   userID,
		SprintID:  sprintID,
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSprintDTO(*sprint))
}

// DeleteSprint deletes a sprint, returning its tasks and stories to the
// backlog. Owner-only.
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	sprintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sprint ID")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.sprintService.DeleteSprint(userID, sprintID); err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sprint deleted successfully",
	})
}

// AssignStory places a backlog story into the sprint. Owner-only.
func (h *SprintHandler) AssignStory(c *gin.Context) {
	sprintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid sprint ID")
		return
	}

	type AssignStoryRequest struct {
		StoryID uint64 `json:"story_id" binding:"required"`
	}

	var req AssignStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	story, err := h.backlogService.AssignStoryToSprint(userID, req.StoryID, sprintID)
	if err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoryDTO(*story))
}

// UnassignStory returns a story to the backlog. Owner-only.
func (h *SprintHandler) UnassignStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid story ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	story, err := h.backlogService.UnassignStoryFromSprint(userID, storyID)
	if err != nil {
		respondSprintError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStoryDTO(*story))
}

func respondSprintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.AccessDenied(c, "")
	case errors.Is(err, services.ErrSprintNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrStoryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidSprintName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequestCode(c, apierrors.ErrCodeInvalidDate, err.Error())
	case errors.Is(err, services.ErrCrossProjectAssignment):
		apierrors.BadRequestCode(c, apierrors.ErrCodeCrossProjectAssignment, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
