package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"PriceHistory/internal/model"
	"PriceHistory/internal/store"
	"PriceHistory/internal/symbols"
)

// HistoryFetcher reads the price series of one canonical symbol.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, symbol string) ([]model.PriceRecord, error)
}

// Handler serves the health check, history lookup and symbol catalog.
type Handler struct {
	symbols *symbols.AllowList
	history HistoryFetcher
}

// NewHandler creates a Handler over an allow-list and a history source.
func NewHandler(allow *symbols.AllowList, history HistoryFetcher) *Handler {
	return &Handler{symbols: allow, history: history}
}

// Health handles GET /health. It has no dependencies and never fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// GetHistory handles GET /api/history/{symbol}
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["symbol"]
	logger := zerolog.Ctx(r.Context())

	symbol, err := h.symbols.Validate(raw)
	if err != nil {
		logger.Warn().Str("symbol", raw).Msg("rejected symbol")
		writeError(w, r, http.StatusBadRequest, codeInvalidSymbol, "Invalid symbol: "+raw)
		return
	}

	records, err := h.history.FetchHistory(r.Context(), symbol.String())
	if err != nil {
		event := logger.Error()
		if errors.Is(err, context.Canceled) {
			// The client went away; not a store fault.
			event = logger.Debug()
		}
		event.Err(err).
			Str("symbol", symbol.String()).
			Str("kind", storeErrorKind(err)).
			Msg("history lookup failed")
		writeError(w, r, http.StatusInternalServerError, codeInternal, "Internal server error")
		return
	}

	if len(records) == 0 {
		logger.Warn().Str("symbol", symbol.String()).Msg("no data for symbol")
		writeError(w, r, http.StatusNotFound, codeNotFound, "No data found for symbol: "+symbol.String())
		return
	}

	logger.Info().
		Str("symbol", symbol.String()).
		Int("records", len(records)).
		Msg("returning history")
	writeJSON(w, r, http.StatusOK, records)
}

// ListSymbols handles GET /api/symbols
func (h *Handler) ListSymbols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.symbols.Assets())
}

func storeErrorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, store.ErrQuery):
		return "query"
	case errors.Is(err, store.ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}
