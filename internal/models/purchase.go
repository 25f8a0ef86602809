package models

import "github.com/shopspring/decimal"

// PurchaseRequest represents an incoming purchase request
type PurchaseRequest struct {
	Selection string          `json:"selection"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Purchase represents a completed vend
type Purchase struct {
	ID        string          `json:"id"`
	Selection Selection       `json:"selection"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
	Remaining decimal.Decimal `json:"remaining"`
}

// DepositRequest represents funds inserted into the machine
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse reports the amount currently deposited
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
