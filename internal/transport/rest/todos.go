package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// todoService defines the minimal interface needed by TodoHandler.
type todoService interface {
	CreateTodo(ctx context.Context, ownerLogin, name string) (int64, error)
	Todos(ctx context.Context, ownerLogin string) ([]domain.Todo, error)
	DeleteTodo(ctx context.Context, ownerLogin, name string) error
}

// TodoHandler serves todo list REST endpoints.
type TodoHandler struct {
	svc todoService
	log *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(svc todoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: logger.With("handler", "todos")}
}

type todoRequest struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type todoJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	id, err := h.svc.CreateTodo(r.Context(), req.Login, req.Name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// List handles GET /todos?login=.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.Todos(r.Context(), r.URL.Query().Get("login"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]todoJSON, len(todos))
	for i, t := range todos {
		out[i] = todoJSON{ID: t.ID, Name: t.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /todos?login=&name=.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("name") == "" {
		writeError(w, r, h.log, domain.NewValidationError("name", "must not be empty"))
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), q.Get("login"), q.Get("name")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
