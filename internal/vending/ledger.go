package vending

import (
	"sync"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/repository"
	"github.com/shopspring/decimal"
)

// Receipt describes a completed vend
type Receipt struct {
	Selection models.Selection
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Balance   decimal.Decimal
	Remaining decimal.Decimal
}

// Ledger holds the deposited balance and the inventory it sells from.
// A single mutex covers both, so every Vend is one all-or-nothing transaction
// with respect to concurrent callers.
type Ledger struct {
	mu        sync.Mutex
	inventory repository.InventoryRepository
	balance   decimal.Decimal
}

// NewLedger creates a ledger that takes ownership of inventory.
// A negative initial balance is clamped to zero.
func NewLedger(inventory repository.InventoryRepository, initialBalance decimal.Decimal) *Ledger {
	if initialBalance.IsNegative() {
		initialBalance = decimal.Zero
	}
	return &Ledger{
		inventory: inventory,
		balance:   initialBalance,
	}
}

// Deposit adds amount to the balance
func (l *Ledger) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeDeposit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance = l.balance.Add(amount)
	return nil
}

// Vend sells quantity units of sel.
//
// Checks run in a fixed order: the selection must exist, its slot must not
// be empty, the quantity must be positive and covered by stock, and the
// balance must cover price*quantity. Any failure leaves the ledger untouched.
func (l *Ledger) Vend(sel models.Selection, quantity decimal.Decimal) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.inventory.Get(sel)
	if !ok {
		return Receipt{}, ErrInvalidSelection
	}

	if !item.Quantity.IsPositive() {
		return Receipt{}, ErrOutOfStock
	}

	if !quantity.IsPositive() {
		return Receipt{}, ErrInvalidQuantity
	}

	if item.Quantity.LessThan(quantity) {
		return Receipt{}, &InsufficientStockError{
			Available: item.Quantity,
			Requested: quantity,
		}
	}

	total := item.Price.Mul(quantity)
	if l.balance.LessThan(total) {
		return Receipt{}, &InsufficientFundsError{
			Shortfall: total.Sub(l.balance),
		}
	}

	l.balance = l.balance.Sub(total)
	item.Quantity = item.Quantity.Sub(quantity)
	l.inventory.Set(sel, item)

	return Receipt{
		Selection: sel,
		Quantity:  quantity,
		UnitPrice: item.Price,
		Total:     total,
		Balance:   l.balance,
		Remaining: item.Quantity,
	}, nil
}

// Peek returns the current record for sel without side effects
func (l *Ledger) Peek(sel models.Selection) (models.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inventory.Get(sel)
}

// Quote returns the price of quantity units of sel at the current price
func (l *Ledger) Quote(sel models.Selection, quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, ErrInvalidQuantity
	}

	item, ok := l.Peek(sel)
	if !ok {
		return decimal.Zero, ErrInvalidSelection
	}
	return item.Price.Mul(quantity), nil
}

// Balance returns the amount currently deposited
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance
}

// Selections returns the stocked selections in display order
func (l *Ledger) Selections() []models.Selection {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inventory.Selections()
}
