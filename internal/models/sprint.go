package models

import "time"

type Sprint struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Goal      string     `gorm:"type:text" json:"goal"`
	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	ProjectID uint64     `gorm:"not null;index" json:"project_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Project     Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks       []Task      `gorm:"foreignKey:SprintID" json:"tasks,omitempty"`
	UserStories []UserStory `gorm:"foreignKey:SprintID" json:"user_stories,omitempty"`
}
