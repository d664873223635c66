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
	"github.com/sprintboard/sprintboard/internal/utils"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the current user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the dashboard: every project the user owns or joined.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListProjects(userID, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns the project view with sprints, stories and tasks.
// Access is checked by RequireProjectAccess.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)
	loaded, err := h.projectService.GetProject(userID, project.ID, "Sprints", "UserStories", "Tasks", "Tasks.Assignee")
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*loaded))
}

// ListMembers returns current members and users available to add. Owner-only
// via RequireProjectOwner.
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)
	members, available, err := h.projectService.ListMembers(userID, project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembersPageDTO(members, available))
}

// AddMember adds a user to the project. Owner-only.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	member, err := h.projectService.AddMember(services.AddMemberInput{
		ActorID:   userID,
		ProjectID: project.ID,
		UserID:    req.UserID,
		Role:      models.MembershipRole(req.Role),
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Member added successfully",
		"membership": gin.H{"id": member.ID, "user_id": member.UserID, "role": member.Role},
	})
}

// RemoveMember removes a membership by its ID. Owner-only; the owner's own
// membership is protected.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	membershipID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.projectService.RemoveMember(userID, project.ID, membershipID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		apierrors.AccessDenied(c, "")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMembershipNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateMembership):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateMembership, err.Error())
	case errors.Is(err, services.ErrOwnerProtected):
		apierrors.Conflict(c, apierrors.ErrCodeOwnerProtected, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
