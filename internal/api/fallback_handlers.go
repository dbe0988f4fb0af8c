package api

import (
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
)

// ServiceInfo is the body of the root endpoint.
type ServiceInfo struct {
	Service string `json:"service"`
}

// ServiceInfoHandler answers GET / with the service name.
func ServiceInfoHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfo{Service: name})
	}
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, msgNotFound)
}

// MethodNotAllowed answers known routes requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllow)
}
