package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// folderService defines the minimal interface needed by FolderHandler.
type folderService interface {
	CreateFolder(ctx context.Context, ownerLogin, name string) (int64, error)
	Folders(ctx context.Context, ownerLogin string) ([]domain.Folder, error)
	RenameFolder(ctx context.Context, ownerLogin string, folderID int64, name string) error
	DeleteFolder(ctx context.Context, ownerLogin string, folderID int64) error
}

// FolderHandler serves folder REST endpoints.
type FolderHandler struct {
	svc folderService
	log *slog.Logger
}

// NewFolderHandler creates a FolderHandler.
func NewFolderHandler(svc folderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{svc: svc, log: logger.With("handler", "folders")}
}

type folderRequest struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type folderJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"itemCount"`
}

// Create handles POST /folders.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	id, err := h.svc.CreateFolder(r.Context(), req.Login, req.Name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// List handles GET /folders?login=.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.Folders(r.Context(), r.URL.Query().Get("login"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]folderJSON, len(folders))
	for i, f := range folders {
		out[i] = folderJSON{ID: f.ID, Name: f.Name, ItemCount: f.ItemCount}
	}
	writeJSON(w, http.StatusOK, out)
}

// Rename handles PUT /folders/{id}.
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req folderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.RenameFolder(r.Context(), req.Login, id, req.Name); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Delete handles DELETE /folders/{id}?login=.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteFolder(r.Context(), r.URL.Query().Get("login"), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
