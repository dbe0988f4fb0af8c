package api

import (
	"encoding/json"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// Validation messages returned to clients.
var (
	msgTitleRequired  = "title is required (non-empty string)"
	msgTitleNonEmpty  = "title must be a non-empty string"
	msgSubtitleString = "subtitle must be a string"
	msgSubtitleOrNull = "subtitle must be a string or null"
	msgStatusInvalid  = "status must be one of: " + domain.TaskStatusList()
)

// parseStatus accepts only a JSON string naming one of the enumerated statuses.
func parseStatus(raw json.RawMessage) (domain.TaskStatus, error) {
	s, ok := shared.JSONString(raw)
	if !ok {
		return "", domain.NewValidationError("status", msgStatusInvalid, domain.ErrInvalidTaskStatus)
	}
	status, err := domain.ParseTaskStatus(s)
	if err != nil {
		return "", domain.NewValidationError("status", msgStatusInvalid, err)
	}
	return status, nil
}

// parseCreateTask validates a decoded create body. Fields other than title,
// subtitle and status are ignored.
func parseCreateTask(fields map[string]json.RawMessage) (domain.NewTaskInput, error) {
	title, ok := shared.JSONString(fields["title"])
	if !ok || strings.TrimSpace(title) == "" {
		return domain.NewTaskInput{}, domain.NewValidationError("title", msgTitleRequired, domain.ErrEmptyTaskTitle)
	}

	var subtitle *string
	if raw, present := fields["subtitle"]; present {
		s, ok := shared.JSONString(raw)
		if !ok {
			return domain.NewTaskInput{}, domain.NewValidationError("subtitle", msgSubtitleString, domain.ErrValidation)
		}
		subtitle = &s
	}

	var status domain.TaskStatus
	if raw, present := fields["status"]; present {
		var err error
		if status, err = parseStatus(raw); err != nil {
			return domain.NewTaskInput{}, err
		}
	}

	in, err := domain.NewTaskInputFrom(title, subtitle, status)
	if err != nil {
		return domain.NewTaskInput{}, domain.NewValidationError("", msgTitleRequired, err)
	}
	return in, nil
}

// parseTaskPatch validates a decoded update body into a patch. A subtitle
// that is null or blank stages removal. Fields are checked in the order
// title, subtitle, status and the first failure is returned.
func parseTaskPatch(fields map[string]json.RawMessage) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if raw, present := fields["title"]; present {
		title, ok := shared.JSONString(raw)
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			return domain.TaskPatch{}, domain.NewValidationError("title", msgTitleNonEmpty, domain.ErrEmptyTaskTitle)
		}
		patch.Title = domain.Set(title)
	}

	if raw, present := fields["subtitle"]; present {
		if shared.IsJSONNull(raw) {
			patch.Subtitle = domain.Remove[string]()
		} else {
			subtitle, ok := shared.JSONString(raw)
			if !ok {
				return domain.TaskPatch{}, domain.NewValidationError("subtitle", msgSubtitleOrNull, domain.ErrValidation)
			}
			if subtitle = strings.TrimSpace(subtitle); subtitle == "" {
				patch.Subtitle = domain.Remove[string]()
			} else {
				patch.Subtitle = domain.Set(subtitle)
			}
		}
	}

	if raw, present := fields["status"]; present {
		status, err := parseStatus(raw)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Status = domain.Set(status)
	}

	return patch, nil
}
