package types

import "fmt"

// TaskStatus represents the lifecycle state of a dispatch task
type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusInProgress,
		TaskStatusCompleted,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as in-progress. Records
// written by older revisions carry no status field.
func (s TaskStatus) Normalize() TaskStatus {
	if s == "" {
		return TaskStatusInProgress
	}
	return s
}

// Toggle returns the opposite status. Both states are reachable from each
// other; there is no terminal state.
func (s TaskStatus) Toggle() TaskStatus {
	if s.Normalize() == TaskStatusInProgress {
		return TaskStatusCompleted
	}
	return TaskStatusInProgress
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
