package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	CreateCatalogItem(ctx context.Context, ownerLogin string, kind domain.CatalogKind, label string, iconID int) (*domain.CatalogItem, error)
	CatalogItems(ctx context.Context, ownerLogin string, kind domain.CatalogKind) ([]domain.CatalogItem, error)
	DeleteCatalogItem(ctx context.Context, ownerLogin string, kind domain.CatalogKind, id int64) error
}

// CatalogHandler serves the tag, activity and emotion catalog endpoints.
// The kind comes from the {kind} path segment (tags, activities, emotions).
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "categories")}
}

type catalogItemRequest struct {
	Login  string `json:"login"`
	Label  string `json:"label"`
	IconID int    `json:"iconId"`
}

// pathKind maps the plural path segment to a catalog kind.
func pathKind(r *http.Request) (domain.CatalogKind, error) {
	switch r.PathValue("kind") {
	case "tags":
		return domain.KindTag, nil
	case "activities":
		return domain.KindActivity, nil
	case "emotions":
		return domain.KindEmotion, nil
	}
	return "", domain.NewValidationError("kind", "must be tags, activities or emotions")
}

// Create handles POST /categories/{kind}.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req catalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	item, err := h.svc.CreateCatalogItem(r.Context(), req.Login, kind, req.Label, req.IconID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, catalogItemJSON{ID: item.ID, Label: item.Label, IconID: item.IconID})
}

// List handles GET /categories/{kind}?login=.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	items, err := h.svc.CatalogItems(r.Context(), r.URL.Query().Get("login"), kind)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemsJSON(items))
}

// Delete handles DELETE /categories/{kind}/{id}?login=.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteCatalogItem(r.Context(), r.URL.Query().Get("login"), kind, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
