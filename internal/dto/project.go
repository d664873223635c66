package dto

import (
	"time"

	"github.com/sprintboard/sprintboard/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MembershipDTO represents a project membership in API responses
type MembershipDTO struct {
	ID   uint64                `json:"id"`
	User UserDTO               `json:"user"`
	Role models.MembershipRole `json:"role"`
}

// ProjectDetailDTO is the full project view: sprints, stories and tasks
type ProjectDetailDTO struct {
	ProjectDTO
	Sprints     []SprintDTO `json:"sprints"`
	UserStories []StoryDTO  `json:"user_stories"`
	Tasks       []TaskDTO   `json:"tasks"`
}

// MembersPageDTO pairs current members with users available to add
type MembersPageDTO struct {
	Members        []MembershipDTO `json:"members"`
	AvailableUsers []UserDTO       `json:"available_users"`
}

// ToProjectDTO converts a project model to its API representation
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToMembershipDTO converts a membership with its user preloaded
func ToMembershipDTO(member models.ProjectMembership) MembershipDTO {
	return MembershipDTO{
		ID:   member.ID,
		User: ToUserDTO(member.User),
		Role: member.Role,
	}
}

// ToProjectDetailDTO converts a project with its children preloaded
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO:  ToProjectDTO(project),
		Sprints:     ToSprintDTOs(project.Sprints),
		UserStories: ToStoryDTOs(project.UserStories),
		Tasks:       ToTaskDTOs(project.Tasks),
	}
}

// ToMembersPageDTO builds the members page payload
func ToMembersPageDTO(members []models.ProjectMembership, available []models.User) MembersPageDTO {
	memberDTOs := make([]MembershipDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = ToMembershipDTO(m)
	}
	return MembersPageDTO{
		Members:        memberDTOs,
		AvailableUsers: ToUserDTOs(available),
	}
}
