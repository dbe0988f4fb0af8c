package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/task-api/internal/api/shared"
)

// Recoverer converts a panic in a later handler into a generic JSON 500
// response. The panic value and stack go to the logs only.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal Server Error", err)
		}()

		next.ServeHTTP(w, r)
	})
}
