// Package tracker defines the task-status source consumed during promotion
// checks, decoupling the core from any one tracking service.
package tracker

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no task record matches the given identifier,
// or when the matching record lacks the expected shape.
var ErrNotFound = errors.New("task not found")

// TaskStatus is the normalized view of a task record. Recomputed on every
// run, never persisted.
type TaskStatus struct {
	// Status is the task's status label, lowercased. Empty when the record
	// has no status set.
	Status string
	// URL is the canonical link to the task. Empty when unknown.
	URL string
}

// Source looks up task statuses by numeric identifier.
//
// Lookup failures of any kind are recoverable by contract: callers downgrade
// them to "status unknown" and keep going.
type Source interface {
	Lookup(ctx context.Context, taskID int) (*TaskStatus, error)
}
