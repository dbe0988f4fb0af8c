package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler handles the task CRUD endpoints
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
// If logger is nil, a default logger will be used.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task endpoints on r under /tasks.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, h.tasks)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	fields, err := shared.DecodeJSONObject(r)
	if err != nil {
		log.Debug("failed to decode create body", slog.String("error", err.Error()))
		respondWithServiceError(w, r, err)
		return
	}

	in, err := parseCreateTask(fields)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, h.tasks)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	fields, err := shared.DecodeJSONObject(r)
	if err != nil {
		log.Debug("failed to decode update body", slog.String("error", err.Error()))
		respondWithServiceError(w, r, err)
		return
	}

	patch, err := parseTaskPatch(fields)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, patch)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, h.tasks)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	task, err := h.tasks.DeleteTask(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}
