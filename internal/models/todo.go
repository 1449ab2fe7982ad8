package models

import (
	"time"

	"gorm.io/datatypes"
)

type TodoStatus string

const (
	StatusPending    TodoStatus = "PENDING"
	StatusInProgress TodoStatus = "IN_PROGRESS"
	StatusCompleted  TodoStatus = "COMPLETED"
)

func (s TodoStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TodoCategory string

const (
	CategoryHousehold   TodoCategory = "HOUSEHOLD"
	CategoryMaintenance TodoCategory = "MAINTENANCE"
	CategoryGarden      TodoCategory = "GARDEN"
	CategoryCleaning    TodoCategory = "CLEANING"
	CategoryOther       TodoCategory = "OTHER"
)

func (c TodoCategory) Valid() bool {
	switch c {
	case CategoryHousehold, CategoryMaintenance, CategoryGarden, CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// Todo is a household task assigned to exactly one user. CompletedAt is
// non-nil iff Status is COMPLETED; create/update logic maintains that.
type Todo struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Status       TodoStatus      `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Category     TodoCategory    `gorm:"size:20" json:"category"`
	AssignedToID uint            `gorm:"not null;index" json:"assigned_to_id"`
	AssignedTo   User            `gorm:"foreignKey:AssignedToID" json:"-"`
	DueDate      *datatypes.Date `json:"due_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}
