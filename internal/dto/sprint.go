package dto

import (
	"time"

	"github.com/sprintboard/sprintboard/internal/constants"
	"github.com/sprintboard/sprintboard/internal/models"
)

// SprintDTO represents a sprint in API responses. Dates are rendered in the
// same YYYY-MM-DD form the API accepts.
type SprintDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Goal      string  `json:"goal"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	ProjectID uint64  `json:"project_id"`
}

// SprintDetailDTO is the sprint view: assigned stories plus the backlog
// stories still available for assignment.
type SprintDetailDTO struct {
	SprintDTO
	SprintStories    []StoryDTO `json:"sprint_stories"`
	AvailableStories []StoryDTO `json:"available_stories"`
}

// ToSprintDTO converts a sprint model to its API representation
func ToSprintDTO(sprint models.Sprint) SprintDTO {
	return SprintDTO{
		ID:        sprint.ID,
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		StartDate: formatSprintDate(sprint.StartDate),
		EndDate:   formatSprintDate(sprint.EndDate),
		ProjectID: sprint.ProjectID,
	}
}

// ToSprintDTOs converts a slice of sprints
func ToSprintDTOs(sprints []models.Sprint) []SprintDTO {
	dtos := make([]SprintDTO, len(sprints))
	for i, s := range sprints {
		dtos[i] = ToSprintDTO(s)
	}
	return dtos
}

// ToSprintDetailDTO builds the sprint details payload
func ToSprintDetailDTO(sprint models.Sprint, sprintStories, available []models.UserStory) SprintDetailDTO {
	return SprintDetailDTO{
		SprintDTO:        ToSprintDTO(sprint),
		SprintStories:    ToStoryDTOs(sprintStories),
		AvailableStories: ToStoryDTOs(available),
	}
}

func formatSprintDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(constants.SprintDateLayout)
	return &s
}
