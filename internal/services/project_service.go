package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"github.com/sprintboard/sprintboard/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProjectName  = errors.New("project name cannot be empty")
	ErrInvalidRole         = errors.New("unrecognized membership role")
	ErrDuplicateMembership = errors.New("user is already a member of this project")
	ErrOwnerProtected      = errors.New("the project owner's membership cannot be removed")
	ErrMembershipNotFound  = errors.New("project membership not found")
	ErrMemberNotFound      = errors.New("user to add is not registered")
)

// ProjectService provides project and membership business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	access      *AccessService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, access *AccessService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		access:      access,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateProject creates a project and the owner's "Product Owner" membership
// in one transaction. Either both rows exist afterwards or neither does.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.CreateWithOwnerMembership(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns the projects accessible to the user: owned projects
// plus projects joined through membership, each listed once.
func (s *ProjectService) ListProjects(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListAccessibleByUser(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project if the user may view it.
func (s *ProjectService) GetProject(actorID, projectID uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.access.RequireAccess(actorID, project); err != nil {
		return nil, err
	}

	return project, nil
}

// AddMemberInput represents parameters to add a project member.
type AddMemberInput struct {
	ActorID   uint64
	ProjectID uint64
	UserID    uint64
	Role      models.MembershipRole
}

// AddMember adds a user to a project. Owner-only.
func (s *ProjectService) AddMember(input AddMemberInput) (*models.ProjectMembership, error) {
	project, err := s.findProject(input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.access.RequireManage(input.ActorID, project); err != nil {
		return nil, err
	}

	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindMembership(input.ProjectID, input.UserID); err == nil {
		return nil, ErrDuplicateMembership
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMembership{
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Role:      input.Role,
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a non-owner membership from a project. Owner-only.
func (s *ProjectService) RemoveMember(actorID, projectID, membershipID uint64) error {
	project, err := s.findProject(projectID)
	if err != nil {
		return err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return err
	}

	membership, err := s.projectRepo.FindMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if membership.ProjectID != projectID {
		return ErrMembershipNotFound
	}

	if membership.UserID == project.OwnerID {
		return ErrOwnerProtected
	}

	if err := s.projectRepo.RemoveMember(membershipID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ListMembers returns the memberships of a project together with the users
// not yet in it. Owner-only, matching the members page of the application.
func (s *ProjectService) ListMembers(actorID, projectID uint64) ([]models.ProjectMembership, []models.User, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.access.RequireManage(actorID, project); err != nil {
		return nil, nil, err
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	available, err := s.projectRepo.ListAvailableUsers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list available users: %w", err)
	}

	return members, available, nil
}

func (s *ProjectService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
