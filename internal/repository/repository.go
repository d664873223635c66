package repository

import (
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwnerMembership creates a project and the owner's
	// "Product Owner" membership within a single transaction.
	CreateWithOwnerMembership(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListAccessibleByUser lists projects the user owns or is a member of,
	// without duplicates, along with the total count before pagination.
	ListAccessibleByUser(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	// AddMember adds a membership row
	AddMember(member *models.ProjectMembership) error

	// RemoveMember deletes a membership row by its ID
	RemoveMember(membershipID uint64) error

	// FindMembership finds the membership of a user in a project
	FindMembership(projectID, userID uint64) (*models.ProjectMembership, error)

	// FindMembershipByID finds a membership row by its ID
	FindMembershipByID(membershipID uint64) (*models.ProjectMembership, error)

	// ListMembers lists all memberships of a project with users preloaded
	ListMembers(projectID uint64) ([]models.ProjectMembership, error)

	// ListAvailableUsers lists users not yet holding a membership in the project
	ListAvailableUsers(projectID uint64) ([]models.User, error)
}

// SprintRepository defines the interface for sprint data access
type SprintRepository interface {
	// Create creates a new sprint
	Create(sprint *models.Sprint) error

	// FindByID finds a sprint by ID
	FindByID(id uint64) (*models.Sprint, error)

	// Update updates a sprint
	Update(sprint *models.Sprint) error

	// DeleteDetachingChildren clears sprint_id on every task and user story
	// referencing the sprint, then deletes the sprint row. All three writes
	// happen in one transaction.
	DeleteDetachingChildren(id uint64) error

	// ListByProject lists the sprints of a project
	ListByProject(projectID uint64) ([]models.Sprint, error)
}

// StoryRepository defines the interface for user story data access
type StoryRepository interface {
	// Create creates a new user story
	Create(story *models.UserStory) error

	// FindByID finds a user story by ID
	FindByID(id uint64) (*models.UserStory, error)

	// Update updates a user story
	Update(story *models.UserStory) error

	// Delete deletes a user story
	Delete(id uint64) error

	// ListBySprint lists stories assigned to a sprint within a project
	ListBySprint(projectID, sprintID uint64) ([]models.UserStory, error)

	// ListBacklog lists stories of a project with no sprint assignment
	ListBacklog(projectID uint64) ([]models.UserStory, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error

	// ListByProjectAndStatus lists tasks of a project in a given status
	ListByProjectAndStatus(projectID uint64, status models.TaskStatus) ([]models.Task, error)
}
