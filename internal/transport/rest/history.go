package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

type historyReader interface {
	List(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}

// HistoryHandler lists results recorded by a database sink.
type HistoryHandler struct {
	reader       historyReader
	defaultLimit int
	log          *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler. reader may be nil when no
// database sink is configured; the endpoint then responds 404.
func NewHistoryHandler(reader historyReader, defaultLimit int, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{reader: reader, defaultLimit: defaultLimit, log: logger.With("handler", "history")}
}

type historyEntry struct {
	ID string `json:"id"`
	resultResponse
}

type historyResponse struct {
	Results []historyEntry `json:"results"`
}

// List handles GET /history/?limit=N. Results are newest first; limit is
// capped at the configured default.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		writeError(w, http.StatusNotFound, "result history is not enabled")
		return
	}

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, h.defaultLimit)
	}

	records, err := h.reader.List(r.Context(), limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "list results", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := historyResponse{Results: make([]historyEntry, 0, len(records))}
	for _, rec := range records {
		resp.Results = append(resp.Results, historyEntry{
			ID:             rec.ID.String(),
			resultResponse: toResultResponse(rec.Result),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
