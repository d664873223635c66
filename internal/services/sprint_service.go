package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sprintboard/sprintboard/internal/constants"
	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSprintNotFound    = errors.New("sprint not found")
	ErrInvalidSprintName = errors.New("sprint name is required")
	ErrInvalidDate       = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("sprint start date must not be after end date")
)

// SprintService governs the sprint lifecycle: creation, edits, the details
// view and deletion. Deleting a sprint returns its tasks and stories to the
// backlog instead of deleting them.
type SprintService struct {
	sprintRepo  repository.SprintRepository
	storyRepo   repository.StoryRepository
	projectRepo repository.ProjectRepository
	access      *AccessService
}

// NewSprintService creates a new SprintService.
func NewSprintService(sprintRepo repository.SprintRepository, storyRepo repository.StoryRepository, projectRepo repository.ProjectRepository, access *AccessService) *SprintService {
	return &SprintService{
		sprintRepo:  sprintRepo,
		storyRepo:   storyRepo,
		projectRepo: projectRepo,
		access:      access,
	}
}

// CreateSprintInput represents parameters to create a sprint. Dates arrive
// as raw strings from the form and are validated here; an empty string means
// no date.
type CreateSprintInput struct {
	ActorID   uint64
	ProjectID uint64
	Name      string
	Goal      string
	StartDate string
	EndDate   string
}

// CreateSprint creates a sprint. Owner-only, like every mutation of a
// project's resources.
func (s *SprintService) CreateSprint(input CreateSprintInput) (*models.Sprint, error) {
	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidSprintName
	}

	start, err := parseSprintDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseSprintDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, ErrInvalidDateRange
	}

	sprint := &models.Sprint{
		Name:      name,
		Goal:      strings.TrimSpace(input.Goal),
		StartDate: start,
		EndDate:   end,
		ProjectID: input.ProjectID,
	}

	if err := s.sprintRepo.Create(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	return sprint, nil
}

// UpdateSprintInput represents a partial sprint update. Nil fields are left
// untouched; an empty date string clears the date.
type UpdateSprintInput struct {
	ActorID   uint64
	SprintID  uint64
	Name      *string
	Goal      *string
	StartDate *string
	EndDate   *string
}

// UpdateSprint edits a sprint. Owner-only.
func (s *SprintService) UpdateSprint(input UpdateSprintInput) (*models.Sprint, error) {
	sprint, project, err := s.findSprintWithProject(input.SprintID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidSprintName
		}
		sprint.Name = name
	}
	if input.Goal != nil {
		sprint.Goal = strings.TrimSpace(*input.Goal)
	}
	if input.StartDate != nil {
		start, err := parseSprintDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		sprint.StartDate = start
	}
	if input.EndDate != nil {
		end, err := parseSprintDate(*input.EndDate)
		if err != nil {
			return nil, err
		}
		sprint.EndDate = end
	}
	if sprint.StartDate != nil && sprint.EndDate != nil && sprint.StartDate.After(*sprint.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.sprintRepo.Update(sprint); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	return sprint, nil
}

// SprintDetails is the sprint view: the sprint itself, the stories assigned
// to it, and the project's backlog stories still available for assignment.
type SprintDetails struct {
	Sprint           *models.Sprint
	SprintStories    []models.UserStory
	AvailableStories []models.UserStory
}

// GetSprintDetails returns the details view for a sprint the actor can view.
func (s *SprintService) GetSprintDetails(actorID, sprintID uint64) (*SprintDetails, error) {
	sprint, project, err := s.findSprintWithProject(sprintID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireAccess(actorID, project); err != nil {
		return nil, err
	}

	sprintStories, err := s.storyRepo.ListBySprint(project.ID, sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprint stories: %w", err)
	}

	available, err := s.storyRepo.ListBacklog(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backlog stories: %w", err)
	}

	return &SprintDetails{
		Sprint:           sprint,
		SprintStories:    sprintStories,
		AvailableStories: available,
	}, nil
}

// DeleteSprint deletes a sprint. Owner-only. Tasks and stories referencing
// the sprint are detached in the same transaction, so no child is ever left
// pointing at a missing sprint and none is deleted with it.
func (s *SprintService) DeleteSprint(actorID, sprintID uint64) error {
	sprint, project, err := s.findSprintWithProject(sprintID)
	if err != nil {
		return err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return err
	}

	if err := s.sprintRepo.DeleteDetachingChildren(sprint.ID); err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	return nil
}

func (s *SprintService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *SprintService) findSprintWithProject(sprintID uint64) (*models.Sprint, *models.Project, error) {
	sprint, err := s.sprintRepo.FindByID(sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSprintNotFound
		}
		return nil, nil, fmt.Errorf("failed to find sprint: %w", err)
	}

	project, err := s.projectRepo.FindByID(sprint.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find sprint's project: %w", err)
	}

	return sprint, project, nil
}

func parseSprintDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(constants.SprintDateLayout, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
