// Package api handles the task HTTP endpoints. Request bodies are decoded
// into raw JSON fields so that an absent field, an explicit null and a value
// of the wrong type can each be told apart, then validated into domain
// inputs before any service call. Errors are mapped to status codes and safe
// client messages in one place (errors.go).
package api
