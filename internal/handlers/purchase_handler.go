package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/service"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
)

// PurchaseHandler handles balance and purchase HTTP requests
type PurchaseHandler struct {
	service *service.VendingService
	log     *slog.Logger
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(service *service.VendingService, log *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log,
	}
}

// InsufficientFundsResponse tells the client how much more to deposit
type InsufficientFundsResponse struct {
	Error     string `json:"error"`
	Shortfall string `json:"shortfall"`
}

// GetBalance handles GET /api/balance
func (h *PurchaseHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Balance(r.Context()), h.log)
}

// Deposit handles POST /api/deposit
func (h *PurchaseHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req models.DepositRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode deposit request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	balance, err := h.service.Deposit(r.Context(), req)
	if err != nil {
		h.log.Warn("deposit rejected", "amount", req.Amount, "error", err)
		status, message := statusForError(err)
		WriteError(w, status, message, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, balance, h.log)
	h.log.Info("deposit accepted", "amount", req.Amount, "balance", balance.Balance)
}

// Purchase handles POST /api/purchase
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode purchase request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	purchase, err := h.service.Purchase(r.Context(), req)
	if err != nil {
		h.log.Warn("purchase rejected", "selection", req.Selection, "quantity", req.Quantity, "error", err)

		if shortfall, ok := vending.Shortfall(err); ok {
			WriteJSON(w, http.StatusPaymentRequired, InsufficientFundsResponse{
				Error:     "Insufficient funds",
				Shortfall: shortfall.StringFixed(2),
			}, h.log)
			return
		}

		status, message := statusForError(err)
		WriteError(w, status, message, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, purchase, h.log)
	h.log.Info("purchase completed",
		"purchase_id", purchase.ID,
		"selection", purchase.Selection,
		"quantity", purchase.Quantity,
		"total", purchase.Total,
	)
}

// statusForError maps domain errors to an HTTP status and client message
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptySelection):
		return http.StatusBadRequest, "Selection is required"
	case errors.Is(err, service.ErrInvalidSelection), errors.Is(err, vending.ErrInvalidSelection):
		return http.StatusNotFound, "Selection not found"
	case errors.Is(err, vending.ErrInvalidQuantity):
		return http.StatusBadRequest, "Quantity must be positive"
	case errors.Is(err, vending.ErrNegativeDeposit):
		return http.StatusBadRequest, "Deposit amount must not be negative"
	case errors.Is(err, vending.ErrOutOfStock):
		return http.StatusConflict, "Item is out of stock"
	case errors.Is(err, vending.ErrInsufficientStock):
		return http.StatusConflict, "Not enough items in stock"
	case errors.Is(err, vending.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "Insufficient funds"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
