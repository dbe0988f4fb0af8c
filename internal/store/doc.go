// Package store defines the persistence contract for tasks. The interface
// abstracts the underlying database so that request handling stays
// independent of whether tasks live in MongoDB, PostgreSQL or memory.
package store
