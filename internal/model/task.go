package model

import "fmt"

// MaxTaskTitleLen is the longest allowed task title.
const MaxTaskTitleLen = 200

// Task represents a single unit of work belonging to a project. A
// task never outlives its project.
type Task struct {
	ID            int64  `json:"id"`
	ProjectID     int64  `json:"project_id"`
	Title         string `json:"title"`
	Notes         string `json:"notes"`
	DueDate       Date   `json:"due_date"`
	Completed     bool   `json:"completed"`
	EstimateHours int    `json:"estimate_hours"`
}

// NewTask creates a task with defaults
func NewTask(projectID int64, title string, dueDate Date) Task {
	return Task{
		ProjectID:     projectID,
		Title:         title,
		DueDate:       dueDate,
		Completed:     false,
		EstimateHours: 1,
	}
}

// Validate checks field constraints. It must pass before any write.
func (t *Task) Validate() error {
	if len(t.Title) > MaxTaskTitleLen {
		return &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be at most %d characters", MaxTaskTitleLen),
		}
	}
	return nil
}
