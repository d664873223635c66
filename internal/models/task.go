package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "To Do"
	TaskStatusDoing TaskStatus = "Doing"
	TaskStatusDone  TaskStatus = "Done"
)

// Valid reports whether the status is one of the three workflow states.
// Transitions between valid states are unconstrained, including
// self-transitions.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(150);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(50);not null;default:'To Do'" json:"status"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	SprintID    *uint64    `gorm:"index" json:"sprint_id"`
	AssigneeID  *uint64    `gorm:"index" json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Sprint   *Sprint `gorm:"foreignKey:SprintID" json:"sprint,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
