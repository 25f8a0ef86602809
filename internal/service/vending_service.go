package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrEmptySelection   = errors.New("selection is required")
)

// Ledger is the transactional core the service delegates to
type Ledger interface {
	Deposit(amount decimal.Decimal) error
	Vend(sel models.Selection, quantity decimal.Decimal) (vending.Receipt, error)
	Peek(sel models.Selection) (models.Item, bool)
	Quote(sel models.Selection, quantity decimal.Decimal) (decimal.Decimal, error)
	Balance() decimal.Decimal
	Selections() []models.Selection
}

// IconResolver maps a selection to the name of its display icon
type IconResolver func(sel models.Selection) string

// VendingService handles vending business logic for API callers
type VendingService struct {
	ledger Ledger
	icons  IconResolver
}

// NewVendingService creates a new vending service
func NewVendingService(ledger Ledger, icons IconResolver) *VendingService {
	if icons == nil {
		icons = func(models.Selection) string { return "" }
	}
	return &VendingService{
		ledger: ledger,
		icons:  icons,
	}
}

// ListItems returns every stocked item in display order
func (s *VendingService) ListItems(ctx context.Context) ([]models.ItemView, error) {
	selections := s.ledger.Selections()
	items := make([]models.ItemView, 0, len(selections))

	for _, sel := range selections {
		item, ok := s.ledger.Peek(sel)
		if !ok {
			continue
		}
		items = append(items, s.view(sel, item))
	}
	return items, nil
}

// GetItem returns a single item by selection name
func (s *VendingService) GetItem(ctx context.Context, name string) (*models.ItemView, error) {
	sel, err := s.parse(name)
	if err != nil {
		return nil, err
	}

	item, ok := s.ledger.Peek(sel)
	if !ok {
		return nil, ErrInvalidSelection
	}

	view := s.view(sel, item)
	return &view, nil
}

// Quote prices a pending purchase without performing it
func (s *VendingService) Quote(ctx context.Context, name string, quantity decimal.Decimal) (*models.QuoteResponse, error) {
	sel, err := s.parse(name)
	if err != nil {
		return nil, err
	}

	total, err := s.ledger.Quote(sel, quantity)
	if err != nil {
		if errors.Is(err, vending.ErrInvalidSelection) {
			return nil, ErrInvalidSelection
		}
		return nil, err
	}

	return &models.QuoteResponse{
		Selection: sel,
		Quantity:  quantity,
		Total:     total,
	}, nil
}

// Balance returns the deposited amount
func (s *VendingService) Balance(ctx context.Context) models.BalanceResponse {
	return models.BalanceResponse{Balance: s.ledger.Balance()}
}

// Deposit adds funds and returns the new balance
func (s *VendingService) Deposit(ctx context.Context, req models.DepositRequest) (models.BalanceResponse, error) {
	if err := s.ledger.Deposit(req.Amount); err != nil {
		return models.BalanceResponse{}, err
	}
	return s.Balance(ctx), nil
}

// Purchase vends the requested selection and stamps the result with an ID.
// Ledger errors are returned unchanged so callers can inspect them with errors.Is.
func (s *VendingService) Purchase(ctx context.Context, req models.PurchaseRequest) (*models.Purchase, error) {
	sel, err := s.parse(req.Selection)
	if err != nil {
		return nil, err
	}

	receipt, err := s.ledger.Vend(sel, req.Quantity)
	if err != nil {
		if errors.Is(err, vending.ErrInvalidSelection) {
			return nil, ErrInvalidSelection
		}
		return nil, err
	}

	return &models.Purchase{
		ID:        generatePurchaseID(),
		Selection: receipt.Selection,
		Quantity:  receipt.Quantity,
		UnitPrice: receipt.UnitPrice,
		Total:     receipt.Total,
		Balance:   receipt.Balance,
		Remaining: receipt.Remaining,
	}, nil
}

func (s *VendingService) parse(name string) (models.Selection, error) {
	if name == "" {
		return "", ErrEmptySelection
	}
	sel, err := models.ParseSelection(name)
	if err != nil {
		return "", ErrInvalidSelection
	}
	return sel, nil
}

func (s *VendingService) view(sel models.Selection, item models.Item) models.ItemView {
	return models.ItemView{
		Selection: sel,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Icon:      s.icons(sel),
	}
}

// generatePurchaseID generates a unique purchase ID using UUID
func generatePurchaseID() string {
	return uuid.New().String()
}
