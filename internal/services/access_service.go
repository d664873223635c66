package services

import (
	"errors"
	"fmt"

	"github.com/sprintboard/sprintboard/internal/models"
	"github.com/sprintboard/sprintboard/internal/repository"
	"gorm.io/gorm"
)

// ErrAccessDenied is returned whenever an actor lacks the right to perform an
// operation on a project resource.
var ErrAccessDenied = errors.New("access denied")

// AccessService answers the two authorization questions of the system.
// Viewing a project is open to the owner and every member; mutating a
// project's resources is owner-only. A Developer added to a project can read
// its board, sprints and stories but cannot change them.
type AccessService struct {
	projectRepo repository.ProjectRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(projectRepo repository.ProjectRepository) *AccessService {
	return &AccessService{
		projectRepo: projectRepo,
	}
}

// CanAccess reports whether the user may view the project and its resources.
func (s *AccessService) CanAccess(userID uint64, project *models.Project) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}

	if _, err := s.projectRepo.FindMembership(project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// CanManage reports whether the user may mutate the project's resources.
// Only the owner can.
func (s *AccessService) CanManage(userID uint64, project *models.Project) bool {
	return project.OwnerID == userID
}

// RequireAccess returns ErrAccessDenied unless the user may view the project.
func (s *AccessService) RequireAccess(userID uint64, project *models.Project) error {
	ok, err := s.CanAccess(userID, project)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}

// RequireManage returns ErrAccessDenied unless the user owns the project.
func (s *AccessService) RequireManage(userID uint64, project *models.Project) error {
	if !s.CanManage(userID, project) {
		return ErrAccessDenied
	}
	return nil
}
