package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/vending-machine/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	service *service.VendingService
	logger  *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service *service.VendingService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/items
// Returns the stocked items in display order
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetItem handles GET /api/items/{selection}
// - 200: item found
// - 400: empty selection
// - 404: selection not stocked
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	selection := chi.URLParam(r, "selection")

	item, err := h.service.GetItem(r.Context(), selection)
	if err != nil {
		h.writeLookupError(w, selection, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// QuoteItem handles GET /api/items/{selection}/quote?quantity=n
func (h *ItemHandler) QuoteItem(w http.ResponseWriter, r *http.Request) {
	selection := chi.URLParam(r, "selection")

	quantity := decimal.NewFromInt(1)
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			h.logger.Warn("invalid quantity", "selection", selection, "quantity", raw, "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid quantity", h.logger)
			return
		}
		quantity = parsed
	}

	quote, err := h.service.Quote(r.Context(), selection, quantity)
	if err != nil {
		h.writeLookupError(w, selection, err)
		return
	}

	WriteJSON(w, http.StatusOK, quote, h.logger)
}

func (h *ItemHandler) writeLookupError(w http.ResponseWriter, selection string, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("failed to get item", "selection", selection, "error", err)
	} else {
		h.logger.Info("item lookup rejected", "selection", selection, "error", err)
	}
	WriteError(w, status, message, h.logger)
}
