package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrProjectInUse is returned when deleting a project that tasks still reference.
	ErrProjectInUse = errors.New("project is referenced by tasks")
)

// ValidationError describes one rejected field at the ingestion boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RefKind names the record type a dangling reference starts from.
type RefKind string

const (
	RefTaskProject  RefKind = "task.projectId"
	RefWorkLogTask  RefKind = "workLog.taskId"
	RefAdhocProject RefKind = "adhocTask.relatedProjectId"
)

// DanglingReference is a weak reference whose target no longer exists.
// It is tolerated everywhere and surfaced only as a warning.
type DanglingReference struct {
	Kind     RefKind
	SourceID string
	TargetID string
}

func (d DanglingReference) String() string {
	return fmt.Sprintf("%s %s -> %s (missing)", d.Kind, d.SourceID, d.TargetID)
}
