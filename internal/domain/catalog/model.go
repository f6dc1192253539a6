// Package catalog defines the sellable entities attached to a store:
// products and offered services. Prices are fixed-point decimals with two
// fractional digits, stored as NUMERIC(10,2).
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a physical good sold by a store. Price is required.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	StoreID     string          `json:"storeId"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Service is an offered service. Unlike Product the price may be absent
// (negotiated off-platform).
type Service struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	StoreID     string           `json:"storeId"`
	Category    string           `json:"category"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
}
