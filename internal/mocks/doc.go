// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available:
//
//   - function-field mocks (MockTaskStore) whose behavior is set per test and
//     which count calls, so tests can assert that an operation did or did not
//     reach the store
//   - testify mocks (TestifyMockTaskService) for expectation-based tests
//
// Usage:
//
//	import "github.com/phrazzld/task-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    tasks := &mocks.MockTaskStore{
//	        GetByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
//	            return nil, store.ErrTaskNotFound
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
