//go:build integration

package testdb

import (
	"os"
	"testing"
)

// Environment variables read by the helpers in this package.
const (
	EnvPostgresURL = "TASKS_TEST_POSTGRES_URL"
	EnvMongoURL    = "TASKS_TEST_MONGO_URL"
)

// ciVariables are set by the common CI providers.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsCI reports whether the tests are running in a CI environment.
func IsCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// PostgresURL returns the PostgreSQL connection string for integration tests.
func PostgresURL(t *testing.T) string {
	t.Helper()
	return lookupURL(t, EnvPostgresURL)
}

// MongoURL returns the MongoDB connection string for integration tests.
func MongoURL(t *testing.T) string {
	t.Helper()
	return lookupURL(t, EnvMongoURL)
}

func lookupURL(t *testing.T, name string) string {
	t.Helper()

	url := os.Getenv(name)
	if url != "" {
		return url
	}
	if IsCI() {
		t.Fatalf("%s must be set in CI", name)
	}
	t.Skipf("%s not set", name)
	return ""
}
