//go:build integration

// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL or MongoDB instance.
//
// Connection strings come from TASKS_TEST_POSTGRES_URL and
// TASKS_TEST_MONGO_URL. When a variable is missing the calling test is
// skipped locally and failed in CI, so a misconfigured pipeline cannot pass
// silently.
package testdb
