package api

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFields(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	fields := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal([]byte(body), &fields))
	return fields
}

func TestParseTaskPatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    domain.TaskPatch
		wantMsg string
	}{
		{name: "empty", body: `{}`, want: domain.TaskPatch{}},
		{name: "unknown fields ignored", body: `{"id":"x","createdAt":"now"}`, want: domain.TaskPatch{}},
		{
			name: "all fields",
			body: `{"title":" T ","subtitle":" S ","status":"in progress"}`,
			want: domain.TaskPatch{
				Title:    domain.Set("T"),
				Subtitle: domain.Set("S"),
				Status:   domain.Set(domain.TaskStatusInProgress),
			},
		},
		{name: "null subtitle removes", body: `{"subtitle":null}`, want: domain.TaskPatch{Subtitle: domain.Remove[string]()}},
		{name: "blank subtitle removes", body: `{"subtitle":"  "}`, want: domain.TaskPatch{Subtitle: domain.Remove[string]()}},
		{name: "boolean subtitle", body: `{"subtitle":false}`, wantMsg: "subtitle must be a string or null"},
		{name: "object title", body: `{"title":{}}`, wantMsg: "title must be a non-empty string"},
		{name: "numeric status", body: `{"status":1}`, wantMsg: "status must be one of: to do, in progress, done"},
		{name: "title checked first", body: `{"title":"","status":"bogus"}`, wantMsg: "title must be a non-empty string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := parseTaskPatch(rawFields(t, tc.body))
			if tc.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantMsg, GetSafeErrorMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, patch)
			assert.NoError(t, patch.Validate())
		})
	}
}

func TestParseCreateTask(t *testing.T) {
	t.Parallel()

	in, err := parseCreateTask(rawFields(t, `{"title":" a ","subtitle":" b "}`))
	require.NoError(t, err)
	require.NotNil(t, in.Subtitle)
	assert.Equal(t, "a", in.Title)
	assert.Equal(t, "b", *in.Subtitle)
	assert.Equal(t, domain.TaskStatusToDo, in.Status)

	_, err = parseCreateTask(rawFields(t, `{"title":["a"]}`))
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	assert.Equal(t, "title is required (non-empty string)", GetSafeErrorMessage(err))
}
