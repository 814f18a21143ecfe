package rest

import (
	"log/slog"
	"net/http"

	"github.com/daybookapp/daybook-server/internal/transport/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth    *AuthHandler
	Entries *EntryHandler
	Folders *FolderHandler
	Catalog *CatalogHandler
	Todos   *TodoHandler
	Health  *HealthHandler
}

// NewRouter mounts all REST routes and wraps them with the standard
// middleware chain.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /register", h.Auth.Register)
	mux.HandleFunc("POST /login", h.Auth.Login)
	mux.HandleFunc("POST /password", h.Auth.ChangePassword)
	mux.HandleFunc("POST /email", h.Auth.ChangeEmail)
	mux.HandleFunc("POST /account/delete", h.Auth.DeleteAccount)

	mux.HandleFunc("POST /entries", h.Entries.Create)
	mux.HandleFunc("GET /entries", h.Entries.List)
	mux.HandleFunc("PUT /entries/{id}", h.Entries.Update)
	mux.HandleFunc("DELETE /entries/{id}", h.Entries.Delete)
	mux.HandleFunc("POST /entries/search/keywords", h.Entries.SearchKeywords)
	mux.HandleFunc("POST /entries/search/categories", h.Entries.SearchCategories)
	mux.HandleFunc("GET /entries/search/date", h.Entries.SearchDate)
	mux.HandleFunc("GET /moods", h.Entries.MoodsByDate)
	mux.HandleFunc("GET /moods/month", h.Entries.MoodsByMonth)

	mux.HandleFunc("POST /folders", h.Folders.Create)
	mux.HandleFunc("GET /folders", h.Folders.List)
	mux.HandleFunc("PUT /folders/{id}", h.Folders.Rename)
	mux.HandleFunc("DELETE /folders/{id}", h.Folders.Delete)

	mux.HandleFunc("POST /categories/{kind}", h.Catalog.Create)
	mux.HandleFunc("GET /categories/{kind}", h.Catalog.List)
	mux.HandleFunc("DELETE /categories/{kind}/{id}", h.Catalog.Delete)

	mux.HandleFunc("POST /todos", h.Todos.Create)
	mux.HandleFunc("GET /todos", h.Todos.List)
	mux.HandleFunc("DELETE /todos", h.Todos.Delete)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)
	return chain(mux)
}
