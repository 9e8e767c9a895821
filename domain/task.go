package domain

import "time"

// Task status values. The status field is a two-state toggle, not a general
// state machine.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task priority codes. Values outside the known range render as a blank label.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Task represents a to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// ToggledStatus returns the status the task flips to: pending becomes
// completed, anything else becomes pending.
func (t *Task) ToggledStatus() string {
	if t != nil && t.Status == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// PriorityLabel maps the numeric priority code to its display label.
func PriorityLabel(priority int) string {
	switch priority {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return ""
	}
}
