package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKeys []string
		wantErr  error
		anyErr   bool
	}{
		{name: "empty body", body: "", wantKeys: []string{}},
		{name: "whitespace body", body: "  \n", wantKeys: []string{}},
		{name: "object", body: `{"title":"a","subtitle":null,"extra":1}`, wantKeys: []string{"extra", "subtitle", "title"}},
		{name: "empty object", body: `{}`, wantKeys: []string{}},
		{name: "array", body: `[1,2]`, wantErr: ErrNotJSONObject},
		{name: "string", body: `"hello"`, wantErr: ErrNotJSONObject},
		{name: "null", body: `null`, wantErr: ErrNotJSONObject},
		{name: "malformed", body: `{"title":`, wantErr: ErrMalformedJSON},
		{name: "trailing comma", body: `{"title":"a",}`, wantErr: ErrMalformedJSON},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tc.body))
			fields, err := DecodeJSONObject(req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tc.wantKeys, keys)
		})
	}
}

func TestDecodeJSONObjectNoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/tasks/1", nil)
	fields, err := DecodeJSONObject(req)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDecodeJSONObjectTooLarge(t *testing.T) {
	body := `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	_, err := DecodeJSONObject(req)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestJSONString(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: `"hello"`, want: "hello", wantOK: true},
		{raw: `"  padded "`, want: "  padded ", wantOK: true},
		{raw: `""`, want: "", wantOK: true},
		{raw: `null`},
		{raw: `42`},
		{raw: `true`},
		{raw: `{"a":1}`},
	}

	for _, tc := range tests {
		got, ok := JSONString(json.RawMessage(tc.raw))
		assert.Equal(t, tc.wantOK, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestIsJSONNull(t *testing.T) {
	assert.True(t, IsJSONNull(json.RawMessage(`null`)))
	assert.True(t, IsJSONNull(json.RawMessage(` null `)))
	assert.False(t, IsJSONNull(json.RawMessage(`"null"`)))
	assert.False(t, IsJSONNull(json.RawMessage(`0`)))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"a"}`))
	require.NoError(t, DecodeJSON(req, &target))
	assert.Equal(t, "a", target.Title)

	req = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &target))
}
