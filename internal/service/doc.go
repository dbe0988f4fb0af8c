// Package service contains the task use cases. It sits between the HTTP
// handlers in internal/api and the store.TaskStore implementations, owning
// the rules that do not belong to either: id pre-validation, the read
// shortcut for empty updates, and the translation of store absence into
// ErrTaskNotFound.
//
// The service depends on domain entities and the store interface, never on
// a specific store implementation.
package service
