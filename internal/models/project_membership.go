package models

import "time"

type MembershipRole string

const (
	RoleProductOwner MembershipRole = "Product Owner"
	RoleScrumMaster  MembershipRole = "Scrum Master"
	RoleDeveloper    MembershipRole = "Developer"
)

// Valid reports whether the role is one of the recognized membership roles.
func (r MembershipRole) Valid() bool {
	switch r {
	case RoleProductOwner, RoleScrumMaster, RoleDeveloper:
		return true
	}
	return false
}

// ProjectMembership links a user to a project with a role. A user holds at
// most one membership per project; the owner's membership is created together
// with the project and can never be removed.
type ProjectMembership struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null;uniqueIndex:idx_membership_project_user" json:"project_id"`
	UserID    uint64         `gorm:"not null;uniqueIndex:idx_membership_project_user" json:"user_id"`
	Role      MembershipRole `gorm:"type:varchar(50);not null;default:'Developer'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
