package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate     *time.Time   `gorm:"type:date" json:"due_date"`
	CategoryID  *uint64      `json:"category_id"`
	UserID      uint64       `gorm:"not null" json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeSave keeps CompletedAt in line with Status on every create and save.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.SyncCompletedAt(tx.NowFunc())
	return nil
}

// SyncCompletedAt sets CompletedAt when the task enters the completed state and
// clears it in any other state.
func (t *Task) SyncCompletedAt(now time.Time) {
	if t.Status != TaskStatusCompleted {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		t.CompletedAt = &now
	}
}

// IsOverdue reports whether the due date lies before today and the task is
// still open. today must be a date value as produced by utils.Today.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(today)
}

// IsValidTaskStatus reports whether s is a known status.
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValidTaskPriority reports whether p is a known priority.
func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
