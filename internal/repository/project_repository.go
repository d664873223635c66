package repository

import (
	"errors"
	"fmt"

	"github.com/sprintboard/sprintboard/internal/database"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateProject is returned when creating the project row fails inside
	// the creation transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateOwnerMembership is returned when creating the owner's
	// membership fails inside the creation transaction.
	ErrCreateOwnerMembership = errors.New("project repository: create owner membership failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwnerMembership creates the project and the owner's
// "Product Owner" membership atomically. A project without its owner
// membership must never become visible.
func (r *GormProjectRepository) CreateWithOwnerMembership(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		membership := &models.ProjectMembership{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      models.RoleProductOwner,
		}

		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwnerMembership, err)
		}

		return nil
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListAccessibleByUser lists projects the user owns or holds a membership in.
// The owner always has a membership row, so dedupe on project id.
func (r *GormProjectRepository) ListAccessibleByUser(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	membershipSubQuery := r.db.Model(&models.ProjectMembership{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := r.db.Model(&models.Project{}).
		Where("owner_id = ?", userID).
		Or("id IN (?)", membershipSubQuery)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// AddMember adds a membership row
func (r *GormProjectRepository) AddMember(member *models.ProjectMembership) error {
	return r.db.Create(member).Error
}

// RemoveMember deletes a membership row by its ID
func (r *GormProjectRepository) RemoveMember(membershipID uint64) error {
	return r.db.Delete(&models.ProjectMembership{}, membershipID).Error
}

// FindMembership finds the membership of a user in a project
func (r *GormProjectRepository) FindMembership(projectID, userID uint64) (*models.ProjectMembership, error) {
	var member models.ProjectMembership
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembershipByID finds a membership row by its ID
func (r *GormProjectRepository) FindMembershipByID(membershipID uint64) (*models.ProjectMembership, error) {
	var member models.ProjectMembership
	if err := r.db.First(&member, membershipID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all memberships of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMembership, error) {
	var members []models.ProjectMembership
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListAvailableUsers lists users without a membership in the project
func (r *GormProjectRepository) ListAvailableUsers(projectID uint64) ([]models.User, error) {
	var users []models.User
	memberSubQuery := r.db.Model(&models.ProjectMembership{}).
		Select("user_id").
		Where("project_id = ?", projectID)

	if err := r.db.
		Where("id NOT IN (?)", memberSubQuery).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
