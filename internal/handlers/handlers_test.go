package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/vending-machine/internal/config"
	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/repository"
	"github.com/Lixing-Zhang/vending-machine/internal/service"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
	"github.com/Lixing-Zhang/vending-machine/pkg/logger"
	"github.com/shopspring/decimal"
)

const testAPIKey = "apitest"

func newTestRouter(t *testing.T, balance string) (http.Handler, *vending.Ledger) {
	t.Helper()

	repo := repository.NewInMemoryInventoryRepository(map[models.Selection]models.Item{
		models.Soda:     {Price: decimal.RequireFromString("1.00"), Quantity: decimal.NewFromInt(5)},
		models.Chips:    {Price: decimal.RequireFromString("1.50"), Quantity: decimal.NewFromInt(3)},
		models.Sandwich: {Price: decimal.RequireFromString("4.25"), Quantity: decimal.Zero},
	})
	ledger := vending.NewLedger(repo, decimal.RequireFromString(balance))
	icons := NewIconRegistry(models.Chips)
	svc := service.NewVendingService(ledger, icons.Resolve)
	log := logger.New("error")

	return NewRouter(svc, ledger, config.AuthConfig{APIKeys: []string{testAPIKey}}, log), ledger
}

func doRequest(h http.Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorized {
		req.Header.Set("api_key", testAPIKey)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, "10")

	w := doRequest(r, http.MethodGet, "/health", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Selections != 3 {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestListItems(t *testing.T) {
	r, _ := newTestRouter(t, "10")

	w := doRequest(r, http.MethodGet, "/api/items", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.ItemView
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := []struct {
		selection models.Selection
		icon      string
	}{
		{models.Soda, "Soda"},
		{models.Chips, DefaultIcon},
		{models.Sandwich, "Sandwich"},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, w := range want {
		if items[i].Selection != w.selection {
			t.Errorf("items[%d].Selection = %s, want %s", i, items[i].Selection, w.selection)
		}
		if items[i].Icon != w.icon {
			t.Errorf("items[%d].Icon = %s, want %s", i, items[i].Icon, w.icon)
		}
	}
}

func TestGetItem(t *testing.T) {
	r, _ := newTestRouter(t, "10")

	testCases := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"stocked selection", "/api/items/Soda", http.StatusOK, ""},
		{"empty slot is still listed", "/api/items/Sandwich", http.StatusOK, ""},
		{"known selection not in machine", "/api/items/Water", http.StatusNotFound, "Selection not found"},
		{"unknown selection", "/api/items/Caviar", http.StatusNotFound, "Selection not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tc.path, "", false)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}

			if tc.wantError == "" {
				var item models.ItemView
				if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				return
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error != tc.wantError {
				t.Errorf("expected error %q, got %q", tc.wantError, resp.Error)
			}
		})
	}
}

func TestQuoteItem(t *testing.T) {
	r, _ := newTestRouter(t, "10")

	w := doRequest(r, http.MethodGet, "/api/items/Chips/quote?quantity=3", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var quote models.QuoteResponse
	if err := json.NewDecoder(w.Body).Decode(&quote); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !quote.Total.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("expected total 4.50, got %s", quote.Total)
	}

	w = doRequest(r, http.MethodGet, "/api/items/Chips/quote?quantity=lots", "", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad quantity, got %d", w.Code)
	}
}

func TestDeposit(t *testing.T) {
	r, ledger := newTestRouter(t, "1.00")

	w := doRequest(r, http.MethodPost, "/api/deposit", `{"amount": "2.25"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without API key, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/deposit", `{"amount": 2.25}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !ledger.Balance().Equal(decimal.RequireFromString("3.25")) {
		t.Errorf("expected balance 3.25, got %s", ledger.Balance())
	}

	w = doRequest(r, http.MethodPost, "/api/deposit", `{"amount": "-1"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for negative deposit, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/deposit", `{not json`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad body, got %d", w.Code)
	}

	if !ledger.Balance().Equal(decimal.RequireFromString("3.25")) {
		t.Errorf("rejected deposits changed the balance to %s", ledger.Balance())
	}
}

func TestPurchase(t *testing.T) {
	testCases := []struct {
		name       string
		balance    string
		body       string
		wantStatus int
		wantError  string
	}{
		{"success", "10", `{"selection": "Soda", "quantity": 3}`, http.StatusOK, ""},
		{"missing selection", "10", `{"quantity": 1}`, http.StatusBadRequest, "Selection is required"},
		{"unknown selection", "10", `{"selection": "Caviar", "quantity": 1}`, http.StatusNotFound, "Selection not found"},
		{"empty slot", "10", `{"selection": "Sandwich", "quantity": 1}`, http.StatusConflict, "Item is out of stock"},
		{"more than stocked", "10", `{"selection": "Chips", "quantity": 4}`, http.StatusConflict, "Not enough items in stock"},
		{"zero quantity", "10", `{"selection": "Soda", "quantity": 0}`, http.StatusBadRequest, "Quantity must be positive"},
		{"insufficient funds", "2", `{"selection": "Chips", "quantity": 2}`, http.StatusPaymentRequired, "Insufficient funds"},
		{"bad body", "10", `[1, 2]`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(t, tc.balance)

			w := doRequest(r, http.MethodPost, "/api/purchase", tc.body, true)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}

			if tc.wantError == "" {
				var purchase models.Purchase
				if err := json.NewDecoder(w.Body).Decode(&purchase); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if purchase.ID == "" {
					t.Error("expected a purchase ID")
				}
				if !purchase.Balance.Equal(decimal.NewFromInt(7)) {
					t.Errorf("expected balance 7, got %s", purchase.Balance)
				}
				return
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] != tc.wantError {
				t.Errorf("expected error %q, got %q", tc.wantError, resp["error"])
			}
			if tc.wantStatus == http.StatusPaymentRequired && resp["shortfall"] != "1.00" {
				t.Errorf("expected shortfall 1.00, got %q", resp["shortfall"])
			}
		})
	}
}

func TestPurchaseRequiresAPIKey(t *testing.T) {
	r, ledger := newTestRouter(t, "10")

	w := doRequest(r, http.MethodPost, "/api/purchase", `{"selection": "Soda", "quantity": 1}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	soda, _ := ledger.Peek(models.Soda)
	if !soda.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unauthorized purchase changed stock to %s", soda.Quantity)
	}
}

func TestIconRegistry(t *testing.T) {
	icons := NewIconRegistry(models.Gum)

	if got := icons.Resolve(models.Soda); got != "Soda" {
		t.Errorf("Resolve(Soda) = %s, want Soda", got)
	}
	if got := icons.Resolve(models.Gum); got != DefaultIcon {
		t.Errorf("Resolve(Gum) = %s, want %s", got, DefaultIcon)
	}

	icons.Register(models.Gum, "bubblegum")
	if got := icons.Resolve(models.Gum); got != "bubblegum" {
		t.Errorf("Resolve(Gum) after Register = %s, want bubblegum", got)
	}
}
