// Package store defines the storefront model. A store belongs to exactly one
// user and owns the catalog and listing entities.
package store

import "time"

// Store is a merchant storefront.
type Store struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerId"`
	Category    string    `json:"category"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
