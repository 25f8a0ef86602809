package vending

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrNegativeDeposit   = errors.New("deposit amount must not be negative")
)

// InsufficientFundsError is returned when the balance cannot cover a vend.
// Shortfall is the exact additional amount that must be deposited.
type InsufficientFundsError struct {
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: %s more required", ErrInsufficientFunds, e.Shortfall.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InsufficientStockError is returned when a slot holds fewer units than requested
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: available %s, requested %s", ErrInsufficientStock, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Shortfall extracts the missing amount from an insufficient funds error.
func Shortfall(err error) (decimal.Decimal, bool) {
	var fundsErr *InsufficientFundsError
	if errors.As(err, &fundsErr) {
		return fundsErr.Shortfall, true
	}
	return decimal.Zero, false
}
