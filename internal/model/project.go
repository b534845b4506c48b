package model

import "fmt"

// MaxProjectNameLen is the longest allowed project name.
const MaxProjectNameLen = 120

// Project represents a collection of tasks
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   Date   `json:"start_date"`
	Active      bool   `json:"active"`
	Priority    int    `json:"priority"`
}

// NewProject creates a project with defaults
func NewProject(name string, startDate Date) Project {
	return Project{
		Name:      name,
		StartDate: startDate,
		Active:    true,
		Priority:  1,
	}
}

// Validate checks field constraints. It must pass before any write.
func (p *Project) Validate() error {
	if len(p.Name) > MaxProjectNameLen {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", MaxProjectNameLen),
		}
	}
	return nil
}
