package domain

import (
	"strings"
	"time"
)

// PatchOp says what a partial update does with a single field.
type PatchOp uint8

const (
	// PatchUnset leaves the field untouched. It is the zero value.
	PatchUnset PatchOp = iota
	// PatchRemove deletes the field from the stored record.
	PatchRemove
	// PatchSet assigns a new value to the field.
	PatchSet
)

// String returns a readable name for the op.
func (op PatchOp) String() string {
	switch op {
	case PatchUnset:
		return "unset"
	case PatchRemove:
		return "remove"
	case PatchSet:
		return "set"
	default:
		return "unknown"
	}
}

// FieldPatch is the tri-state change for one field of a partial update.
type FieldPatch[T any] struct {
	Op    PatchOp
	Value T
}

// Set returns a patch that assigns v.
func Set[T any](v T) FieldPatch[T] {
	return FieldPatch[T]{Op: PatchSet, Value: v}
}

// Remove returns a patch that deletes the field.
func Remove[T any]() FieldPatch[T] {
	return FieldPatch[T]{Op: PatchRemove}
}

// IsSet reports whether the patch assigns a value.
func (p FieldPatch[T]) IsSet() bool { return p.Op == PatchSet }

// IsRemove reports whether the patch deletes the field.
func (p FieldPatch[T]) IsRemove() bool { return p.Op == PatchRemove }

// Touched reports whether the patch changes the field at all.
func (p FieldPatch[T]) Touched() bool { return p.Op != PatchUnset }

// TaskPatch is a validated partial update of a Task. Only Subtitle supports
// removal; Title and Status can only be left alone or set.
type TaskPatch struct {
	Title    FieldPatch[string]
	Subtitle FieldPatch[string]
	Status   FieldPatch[TaskStatus]
}

// IsEmpty reports whether the patch changes no field.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Touched() && !p.Subtitle.Touched() && !p.Status.Touched()
}

// Validate enforces the Task invariants on the staged changes.
func (p TaskPatch) Validate() error {
	switch p.Title.Op {
	case PatchRemove:
		return NewValidationError("title", "title cannot be removed", ErrEmptyTaskTitle)
	case PatchSet:
		if strings.TrimSpace(p.Title.Value) == "" || p.Title.Value != strings.TrimSpace(p.Title.Value) {
			return NewValidationError("title", "title must be a non-empty string", ErrEmptyTaskTitle)
		}
	}
	if p.Subtitle.IsSet() {
		if strings.TrimSpace(p.Subtitle.Value) == "" || p.Subtitle.Value != strings.TrimSpace(p.Subtitle.Value) {
			return NewValidationError("subtitle", "subtitle must be a non-empty trimmed string", ErrEmptyTaskSubtitle)
		}
	}
	switch p.Status.Op {
	case PatchRemove:
		return NewValidationError("status", "status cannot be removed", ErrInvalidTaskStatus)
	case PatchSet:
		if !p.Status.Value.Valid() {
			return NewValidationError("status", "status must be one of: "+TaskStatusList(), ErrInvalidTaskStatus)
		}
	}
	return nil
}

// SetFields returns the fields assigned by the patch keyed by their JSON/document name.
func (p TaskPatch) SetFields() map[string]any {
	fields := make(map[string]any, 3)
	if p.Title.IsSet() {
		fields["title"] = p.Title.Value
	}
	if p.Subtitle.IsSet() {
		fields["subtitle"] = p.Subtitle.Value
	}
	if p.Status.IsSet() {
		fields["status"] = string(p.Status.Value)
	}
	return fields
}

// UnsetFields returns the names of the fields removed by the patch.
func (p TaskPatch) UnsetFields() []string {
	var fields []string
	if p.Subtitle.IsRemove() {
		fields = append(fields, "subtitle")
	}
	return fields
}

// Apply mutates t according to the patch and bumps UpdatedAt to now.
// The patch must have been validated.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title.IsSet() {
		t.Title = p.Title.Value
	}
	switch p.Subtitle.Op {
	case PatchSet:
		s := p.Subtitle.Value
		t.Subtitle = &s
	case PatchRemove:
		t.Subtitle = nil
	}
	if p.Status.IsSet() {
		t.Status = p.Status.Value
	}
	t.UpdatedAt = now
}
