package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStoryNotFound          = errors.New("user story not found")
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrCrossProjectAssignment = errors.New("sprint belongs to a different project")
	ErrAssigneeNotFound       = errors.New("assigned user does not exist")
)

// BacklogService governs user stories and tasks: creation, edits, the
// workflow status field, and sprint assignment. Statuses form a closed set
// with a free transition graph; the only validation is membership in the set.
type BacklogService struct {
	storyRepo   repository.StoryRepository
	taskRepo    repository.TaskRepository
	sprintRepo  repository.SprintRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	access      *AccessService

	// openBoardStatusUpdates preserves the historical rule that any
	// authenticated user may change any task's status. When false, status
	// changes require membership in the task's project.
	openBoardStatusUpdates bool
}

// NewBacklogService creates a new BacklogService.
func NewBacklogService(
	storyRepo repository.StoryRepository,
	taskRepo repository.TaskRepository,
	sprintRepo repository.SprintRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	access *AccessService,
	openBoardStatusUpdates bool,
) *BacklogService {
	return &BacklogService{
		storyRepo:              storyRepo,
		taskRepo:               taskRepo,
		sprintRepo:             sprintRepo,
		projectRepo:            projectRepo,
		userRepo:               userRepo,
		access:                 access,
		openBoardStatusUpdates: openBoardStatusUpdates,
	}
}

// CreateStoryInput represents parameters to create a user story.
type CreateStoryInput struct {
	ActorID     uint64
	ProjectID   uint64
	Title       string
	Description string
}

// CreateStory creates a backlog story. Owner-only; non-owner members can
// view the backlog but cannot add to it.
func (s *BacklogService) CreateStory(input CreateStoryInput) (*models.UserStory, error) {
	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	story := &models.UserStory{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      models.TaskStatusTodo,
		ProjectID:   input.ProjectID,
	}

	if err := s.storyRepo.Create(story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return story, nil
}

// UpdateStoryInput represents a partial story update.
type UpdateStoryInput struct {
	ActorID     uint64
	StoryID     uint64
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// UpdateStory edits a story. Owner-only.
func (s *BacklogService) UpdateStory(input UpdateStoryInput) (*models.UserStory, error) {
	story, project, err := s.findStoryWithProject(input.StoryID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		story.Title = title
	}
	if input.Description != nil {
		story.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		story.Status = *input.Status
	}

	if err := s.storyRepo.Update(story); err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}

	return story, nil
}

// DeleteStory deletes a story. Owner-only.
func (s *BacklogService) DeleteStory(actorID, storyID uint64) error {
	story, project, err := s.findStoryWithProject(storyID)
	if err != nil {
		return err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return err
	}

	if err := s.storyRepo.Delete(story.ID); err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}

	return nil
}

// AssignStoryToSprint places a story into a sprint. Owner-only. The sprint
// must belong to the story's project.
func (s *BacklogService) AssignStoryToSprint(actorID, storyID, sprintID uint64) (*models.UserStory, error) {
	story, project, err := s.findStoryWithProject(storyID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return nil, err
	}

	sprint, err := s.sprintRepo.FindByID(sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, fmt.Errorf("failed to find sprint: %w", err)
	}

	if sprint.ProjectID != story.ProjectID {
		return nil, ErrCrossProjectAssignment
	}

	story.SprintID = &sprint.ID
	if err := s.storyRepo.Update(story); err != nil {
		return nil, fmt.Errorf("failed to assign story to sprint: %w", err)
	}

	return story, nil
}

// UnassignStoryFromSprint returns a story to the backlog. Owner-only. This
// is the only path back to the backlog; no assignment history is kept.
func (s *BacklogService) UnassignStoryFromSprint(actorID, storyID uint64) (*models.UserStory, error) {
	story, project, err := s.findStoryWithProject(storyID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return nil, err
	}

	story.SprintID = nil
	if err := s.storyRepo.Update(story); err != nil {
		return nil, fmt.Errorf("failed to unassign story from sprint: %w", err)
	}

	return story, nil
}

// CreateTaskInput represents parameters to create a task.
type CreateTaskInput struct {
	ActorID     uint64
	ProjectID   uint64
	Title       string
	Description string
	SprintID    *uint64
	AssigneeID  *uint64
}

// CreateTask creates a task. Owner-only.
func (s *BacklogService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.checkTaskReferences(input.ProjectID, input.SprintID, input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      models.TaskStatusTodo,
		ProjectID:   input.ProjectID,
		SprintID:    input.SprintID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update. ClearSprint and
// ClearAssignee distinguish "remove" from "leave untouched".
type UpdateTaskInput struct {
	ActorID       uint64
	TaskID        uint64
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	SprintID      *uint64
	ClearSprint   bool
	AssigneeID    *uint64
	ClearAssignee bool
}

// UpdateTask edits a task. Owner-only.
func (s *BacklogService) UpdateTask(input UpdateTaskInput) (*models.Task, error) {
	task, project, err := s.findTaskWithProject(input.TaskID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearSprint {
		task.SprintID = nil
	} else if input.SprintID != nil {
		if err := s.checkTaskReferences(task.ProjectID, input.SprintID, nil); err != nil {
			return nil, err
		}
		task.SprintID = input.SprintID
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.checkTaskReferences(task.ProjectID, nil, input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task. Owner-only.
func (s *BacklogService) DeleteTask(actorID, taskID uint64) error {
	task, project, err := s.findTaskWithProject(taskID)
	if err != nil {
		return err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// SetTaskStatus moves a task to any of the three workflow states, including
// the one it is already in. Actor requirements depend on the open-board
// setting.
func (s *BacklogService) SetTaskStatus(actorID, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, project, err := s.findTaskWithProject(taskID)
	if err != nil {
		return nil, err
	}

	if !s.openBoardStatusUpdates {
		if err := s.access.RequireAccess(actorID, project); err != nil {
			return nil, err
		}
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// Board is the kanban view of a project's tasks.
type Board struct {
	Todo  []models.Task
	Doing []models.Task
	Done  []models.Task
}

// GetBoard returns the kanban columns for a project the actor can view.
func (s *BacklogService) GetBoard(actorID, projectID uint64) (*Board, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireAccess(actorID, project); err != nil {
		return nil, err
	}

	board := &Board{}
	for _, col := range []struct {
		status models.TaskStatus
		dest   *[]models.Task
	}{
		{models.TaskStatusTodo, &board.Todo},
		{models.TaskStatusDoing, &board.Doing},
		{models.TaskStatusDone, &board.Done},
	} {
		tasks, err := s.taskRepo.ListByProjectAndStatus(projectID, col.status)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q tasks: %w", col.status, err)
		}
		*col.dest = tasks
	}

	return board, nil
}

// checkTaskReferences validates a task's optional sprint and assignee
// references. The sprint must belong to the same project; the assignee must
// be a registered user.
func (s *BacklogService) checkTaskReferences(projectID uint64, sprintID, assigneeID *uint64) error {
	if sprintID != nil {
		sprint, err := s.sprintRepo.FindByID(*sprintID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSprintNotFound
			}
			return fmt.Errorf("failed to find sprint: %w", err)
		}
		if sprint.ProjectID != projectID {
			return ErrCrossProjectAssignment
		}
	}

	if assigneeID != nil {
		if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssigneeNotFound
			}
			return fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	return nil
}

func (s *BacklogService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *BacklogService) findStoryWithProject(storyID uint64) (*models.UserStory, *models.Project, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrStoryNotFound
		}
		return nil, nil, fmt.Errorf("failed to find story: %w", err)
	}

	project, err := s.projectRepo.FindByID(story.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find story's project: %w", err)
	}

	return story, project, nil
}

func (s *BacklogService) findTaskWithProject(taskID uint64) (*models.Task, *models.Project, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find task's project: %w", err)
	}

	return task, project, nil
}
