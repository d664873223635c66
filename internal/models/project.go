package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner       User                `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Sprints     []Sprint            `gorm:"foreignKey:ProjectID" json:"sprints,omitempty"`
	Tasks       []Task              `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	UserStories []UserStory         `gorm:"foreignKey:ProjectID" json:"user_stories,omitempty"`
	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID" json:"memberships,omitempty"`
}
