package models

import "github.com/shopspring/decimal"

// Item is the inventory record for one selection.
// Price is fixed once the catalog is built; Quantity only ever decreases
// through a successful vend and never goes below zero.
type Item struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ItemView is an item as presented to API clients
type ItemView struct {
	Selection Selection       `json:"selection"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Icon      string          `json:"icon"`
}

// QuoteResponse carries the total price for a pending purchase
type QuoteResponse struct {
	Selection Selection       `json:"selection"`
	Quantity  decimal.Decimal `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}
