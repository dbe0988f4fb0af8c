// Package domain contains the Task entity, its status enumeration and the
// tri-state patch type used for partial updates. It has no knowledge of HTTP
// or of any particular store.
package domain
