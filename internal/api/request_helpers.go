package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// idValidator reports whether an id is well formed for the active store.
type idValidator interface {
	ValidID(id string) bool
}

// getPathID extracts the task id from the URL path and rejects ids the store
// could never have issued. It runs before the body is read, so a malformed
// id always wins over a malformed body.
func getPathID(r *http.Request, ids idValidator) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" || !ids.ValidID(id) {
		return "", domain.NewValidationError("id", msgInvalidID, domain.ErrInvalidID)
	}
	return id, nil
}

// respondWithServiceError writes the status code and safe message for err
// and logs the detailed error.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
