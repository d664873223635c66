package dto

import (
	"time"

	"github.com/sprintboard/sprintboard/internal/models"
)

// StoryDTO represents a user story in API responses
type StoryDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uint64            `json:"project_id"`
	SprintID    *uint64           `json:"sprint_id"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uint64            `json:"project_id"`
	SprintID    *uint64           `json:"sprint_id"`
	AssigneeID  *uint64           `json:"assignee_id"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// BoardDTO is the kanban view of a project's tasks
type BoardDTO struct {
	Todo  []TaskDTO `json:"todo"`
	Doing []TaskDTO `json:"doing"`
	Done  []TaskDTO `json:"done"`
}

// ToStoryDTO converts a user story model to its API representation
func ToStoryDTO(story models.UserStory) StoryDTO {
	return StoryDTO{
		ID:          story.ID,
		Title:       story.Title,
		Description: story.Description,
		Status:      story.Status,
		ProjectID:   story.ProjectID,
		SprintID:    story.SprintID,
	}
}

// ToStoryDTOs converts a slice of user stories
func ToStoryDTOs(stories []models.UserStory) []StoryDTO {
	dtos := make([]StoryDTO, len(stories))
	for i, s := range stories {
		dtos[i] = ToStoryDTO(s)
	}
	return dtos
}

// ToTaskDTO converts a task model to its API representation
func ToTaskDTO(task models.Task) TaskDTO {
	d := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		SprintID:    task.SprintID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
	}
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		d.Assignee = &assignee
	}
	return d
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToBoardDTO converts board columns to the API representation
func ToBoardDTO(todo, doing, done []models.Task) BoardDTO {
	return BoardDTO{
		Todo:  ToTaskDTOs(todo),
		Doing: ToTaskDTOs(doing),
		Done:  ToTaskDTOs(done),
	}
}
