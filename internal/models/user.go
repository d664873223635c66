package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"type:varchar(100);uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleLabel    string    `gorm:"type:varchar(50);not null;default:'Developer'" json:"role_label"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	OwnedProjects []Project           `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []ProjectMembership `gorm:"foreignKey:UserID" json:"-"`
	AssignedTasks []Task              `gorm:"foreignKey:AssigneeID" json:"-"`
}
