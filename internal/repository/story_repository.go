package repository

import (
	"github.com/sprintboard/sprintboard/internal/models"
	"gorm.io/gorm"
)

// GormStoryRepository is a GORM implementation of StoryRepository
type GormStoryRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &GormStoryRepository{db: db}
}

// Create creates a new user story
func (r *GormStoryRepository) Create(story *models.UserStory) error {
	return r.db.Create(story).Error
}

// FindByID finds a user story by ID
func (r *GormStoryRepository) FindByID(id uint64) (*models.UserStory, error) {
	var story models.UserStory
	if err := r.db.First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// Update updates a user story
func (r *GormStoryRepository) Update(story *models.UserStory) error {
	return r.db.Save(story).Error
}

// Delete deletes a user story
func (r *GormStoryRepository) Delete(id uint64) error {
	return r.db.Delete(&models.UserStory{}, id).Error
}

// ListBySprint lists stories of a project assigned to a sprint
func (r *GormStoryRepository) ListBySprint(projectID, sprintID uint64) ([]models.UserStory, error) {
	var stories []models.UserStory
	if err := r.db.Where("project_id = ? AND sprint_id = ?", projectID, sprintID).
		Order("created_at ASC").
		Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// ListBacklog lists stories of a project with no sprint assignment
func (r *GormStoryRepository) ListBacklog(projectID uint64) ([]models.UserStory, error) {
	var stories []models.UserStory
	if err := r.db.Where("project_id = ? AND sprint_id IS NULL", projectID).
		Order("created_at ASC").
		Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}
