package repository

import (
	"github.com/sprintboard/sprintboard/internal/models"
	"gorm.io/gorm"
)

// GormSprintRepository is a GORM implementation of SprintRepository
type GormSprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &GormSprintRepository{db: db}
}

// Create creates a new sprint
func (r *GormSprintRepository) Create(sprint *models.Sprint) error {
	return r.db.Create(sprint).Error
}

// FindByID finds a sprint by ID
func (r *GormSprintRepository) FindByID(id uint64) (*models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.First(&sprint, id).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}

// Update updates a sprint
func (r *GormSprintRepository) Update(sprint *models.Sprint) error {
	return r.db.Save(sprint).Error
}

// DeleteDetachingChildren detaches tasks and user stories from the sprint
// and deletes the sprint row in one transaction. Children go back to the
// backlog; they are never deleted with the sprint.
func (r *GormSprintRepository) DeleteDetachingChildren(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.UserStory{}).
			Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Sprint{}, id).Error
	})
}

// ListByProject lists the sprints of a project
func (r *GormSprintRepository) ListByProject(projectID uint64) ([]models.Sprint, error) {
	var sprints []models.Sprint
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&sprints).Error; err != nil {
		return nil, err
	}
	return sprints, nil
}
