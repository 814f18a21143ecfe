package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/daybookapp/daybook-server/internal/domain"
	"github.com/daybookapp/daybook-server/internal/service/journal"
)

// journalService defines the minimal interface needed by EntryHandler.
type journalService interface {
	CreateEntry(ctx context.Context, ownerLogin string, input journal.EntryInput) (int64, error)
	UpdateEntry(ctx context.Context, ownerLogin string, entryID int64, input journal.EntryInput) error
	DeleteEntry(ctx context.Context, ownerLogin string, entryID int64) error
	Entries(ctx context.Context, ownerLogin string, folderID int64, year, month int) ([]domain.Entry, error)
	SearchByKeywords(ctx context.Context, ownerLogin string, keywords []string) ([]journal.Result, error)
	SearchByCategories(ctx context.Context, ownerLogin string, tagIDs, emotionIDs, activityIDs []int64) ([]journal.Result, error)
	SearchByDate(ctx context.Context, ownerLogin, isoDate string) ([]journal.Result, error)
	MoodsByDate(ctx context.Context, ownerLogin, isoDate string) ([]int64, error)
	MoodsByMonth(ctx context.Context, ownerLogin, yearMonth string) ([]domain.MoodSample, error)
}

// EntryHandler serves journal entry REST endpoints.
type EntryHandler struct {
	svc journalService
	log *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(svc journalService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, log: logger.With("handler", "entries")}
}

type catalogItemJSON struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	IconID int    `json:"iconId"`
}

type entryJSON struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	MoodID     int64             `json:"moodId"`
	FolderID   int64             `json:"folderId"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Tags       []catalogItemJSON `json:"tags"`
	Activities []catalogItemJSON `json:"activities"`
	Emotions   []catalogItemJSON `json:"emotions"`
}

type searchHitJSON struct {
	entryJSON
	Preview string `json:"preview"`
}

type entryRequest struct {
	Login       string  `json:"login"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	MoodID      int64   `json:"moodId"`
	FolderID    int64   `json:"folderId"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	TagIDs      []int64 `json:"tagIds"`
	ActivityIDs []int64 `json:"activityIds"`
	EmotionIDs  []int64 `json:"emotionIds"`
}

func (req *entryRequest) toInput() journal.EntryInput {
	return journal.EntryInput{
		Title:       req.Title,
		Content:     req.Content,
		MoodID:      req.MoodID,
		FolderID:    req.FolderID,
		Date:        req.Date,
		Time:        req.Time,
		TagIDs:      req.TagIDs,
		ActivityIDs: req.ActivityIDs,
		EmotionIDs:  req.EmotionIDs,
	}
}

func toItemsJSON(items []domain.CatalogItem) []catalogItemJSON {
	out := make([]catalogItemJSON, len(items))
	for i, it := range items {
		out[i] = catalogItemJSON{ID: it.ID, Label: it.Label, IconID: it.IconID}
	}
	return out
}

func toEntryJSON(e domain.Entry) entryJSON {
	return entryJSON{
		ID:         e.ID,
		Title:      e.Title,
		Content:    e.Content,
		MoodID:     e.MoodID,
		FolderID:   e.FolderID,
		Date:       e.Date.Format("2006-01-02"),
		Time:       e.Time,
		Tags:       toItemsJSON(e.Tags),
		Activities: toItemsJSON(e.Activities),
		Emotions:   toItemsJSON(e.Emotions),
	}
}

func toHitsJSON(results []journal.Result) []searchHitJSON {
	out := make([]searchHitJSON, len(results))
	for i, res := range results {
		out[i] = searchHitJSON{entryJSON: toEntryJSON(res.Entry), Preview: res.Preview}
	}
	return out
}

// Create handles POST /entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	id, err := h.svc.CreateEntry(r.Context(), req.Login, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update handles PUT /entries/{id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.UpdateEntry(r.Context(), req.Login, id, req.toInput()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Delete handles DELETE /entries/{id}?login=...
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), r.URL.Query().Get("login"), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

// List handles GET /entries?login=&folderId=&year=&month=.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	folderID, _ := strconv.ParseInt(q.Get("folderId"), 10, 64)
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	entries, err := h.svc.Entries(r.Context(), q.Get("login"), folderID, year, month)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = toEntryJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

type keywordSearchRequest struct {
	Login    string   `json:"login"`
	Keywords []string `json:"keywords"`
}

// SearchKeywords handles POST /entries/search/keywords.
func (h *EntryHandler) SearchKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	results, err := h.svc.SearchByKeywords(r.Context(), req.Login, req.Keywords)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toHitsJSON(results))
}

type categorySearchRequest struct {
	Login       string  `json:"login"`
	TagIDs      []int64 `json:"tagIds"`
	EmotionIDs  []int64 `json:"emotionIds"`
	ActivityIDs []int64 `json:"activityIds"`
}

// SearchCategories handles POST /entries/search/categories.
func (h *EntryHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	var req categorySearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	results, err := h.svc.SearchByCategories(r.Context(), req.Login, req.TagIDs, req.EmotionIDs, req.ActivityIDs)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toHitsJSON(results))
}

// SearchDate handles GET /entries/search/date?login=&date=.
func (h *EntryHandler) SearchDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	results, err := h.svc.SearchByDate(r.Context(), q.Get("login"), q.Get("date"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toHitsJSON(results))
}

// MoodsByDate handles GET /moods?login=&date=.
func (h *EntryHandler) MoodsByDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	moods, err := h.svc.MoodsByDate(r.Context(), q.Get("login"), q.Get("date"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int64{"moodIds": moods})
}

type moodSampleJSON struct {
	EntryID int64  `json:"entryId"`
	MoodID  int64  `json:"moodId"`
	Date    string `json:"date"`
}

// MoodsByMonth handles GET /moods/month?login=&month=.
func (h *EntryHandler) MoodsByMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	samples, err := h.svc.MoodsByMonth(r.Context(), q.Get("login"), q.Get("month"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]moodSampleJSON, len(samples))
	for i, s := range samples {
		out[i] = moodSampleJSON{EntryID: s.EntryID, MoodID: s.MoodID, Date: s.Date.Format("2006-01-02")}
	}
	writeJSON(w, http.StatusOK, out)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
