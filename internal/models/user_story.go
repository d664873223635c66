package models

import "time"

// UserStory is a backlog item. A story with a nil SprintID sits in the
// project backlog; assigning it to a sprint of the same project is the only
// way it leaves the backlog.
type UserStory struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(120);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	SprintID    *uint64    `gorm:"index" json:"sprint_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Sprint  *Sprint `gorm:"foreignKey:SprintID" json:"sprint,omitempty"`
}
