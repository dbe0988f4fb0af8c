package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

var (
	// ErrMalformedJSON is returned when the body is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON body")

	// ErrNotJSONObject is returned when the body is valid JSON but not an object.
	ErrNotJSONObject = errors.New("request body must be a JSON object")

	// ErrBodyTooLarge is returned when the body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeJSON decodes the request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// DecodeJSONObject reads the request body as a JSON object keyed by field
// name, keeping each value raw so callers can tell an absent field from an
// explicit null or a value of the wrong type. A missing or blank body decodes
// to an empty object.
func DecodeJSONObject(r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if r.Body == nil || r.Body == http.NoBody {
		return fields, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fields, nil
	}
	if !json.Valid(data) {
		return nil, ErrMalformedJSON
	}
	if data[0] != '{' {
		return nil, ErrNotJSONObject
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return fields, nil
}

// IsJSONNull reports whether a raw field value is the literal null.
func IsJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// JSONString decodes raw as a JSON string. ok is false for any other JSON type.
func JSONString(raw json.RawMessage) (s string, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
