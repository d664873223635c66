package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sprintboard/sprintboard/internal/database"
	apierrors "github.com/sprintboard/sprintboard/internal/errors"
	"github.com/sprintboard/sprintboard/internal/models"
)

// ContextKeyProject is the context key under which the resolved project is
// stored for downstream handlers.
const ContextKeyProject = "project"

// RequireProjectAccess checks that the actor may view the project named in
// the :id route parameter: either they own it or they hold a membership.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if project.OwnerID != userID {
			var member models.ProjectMembership
			err := database.GetDB().
				Where("project_id = ? AND user_id = ?", projectID, userID).
				First(&member).Error
			if err != nil {
				apierrors.AccessDenied(c, "")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectOwner checks that the actor owns the project resolved by
// RequireProjectAccess. Membership management and resource deletion go
// through this gate.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectInterface, exists := c.Get(ContextKeyProject)
		if !exists {
			apierrors.AccessDenied(c, "Project access required")
			c.Abort()
			return
		}

		project, ok := projectInterface.(models.Project)
		if !ok {
			apierrors.InternalError(c, "Invalid project data")
			c.Abort()
			return
		}

		userID, _ := GetUserID(c)
		if project.OwnerID != userID {
			apierrors.AccessDenied(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project resolved by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	projectInterface, exists := c.Get(ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := projectInterface.(models.Project)
	return project, ok
}
