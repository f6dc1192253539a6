// Package listing defines the non-catalog postings a store can publish:
// job offers and announcements.
package listing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is an employment posting.
type Job struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	Location    string           `json:"location,omitempty"`
	StoreID     string           `json:"storeId"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Announcement is a free-form notice published by a store.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	StoreID   string    `json:"storeId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
