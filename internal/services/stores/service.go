// Package stores manages storefronts: the one entity owned directly by a
// user rather than by another store.
package stores

import (
	"context"
	"strings"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage"
)

// CreateInput carries the fields accepted when opening a store. OwnerID is
// honoured only for admin callers; everyone else owns what they create.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OwnerID     string `json:"ownerId"`
}

// UpdateInput carries partial store changes. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"isActive"`
}

type Service struct {
	stores storage.StoreRepository
}

func NewService(stores storage.StoreRepository) *Service {
	return &Service{stores: stores}
}

// Create opens a store owned by the caller.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (store.Store, error) {
	if err := auth.CanCreateStore(caller); err != nil {
		return store.Store{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return store.Store{}, apperr.Validation("store name is required")
	}
	if in.Category == "" {
		return store.Store{}, apperr.Validation("store category is required")
	}

	ownerID := caller.UserID
	if caller.Role == user.RoleAdmin && in.OwnerID != "" {
		ownerID = in.OwnerID
	}

	return s.stores.CreateStore(ctx, store.Store{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
		Category:    in.Category,
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		IsActive:    true,
	})
}

// Get returns one store regardless of its active flag.
func (s *Service) Get(ctx context.Context, id string) (store.Store, error) {
	return s.stores.GetStore(ctx, id)
}

// List returns the public storefront listing, active rows only.
func (s *Service) List(ctx context.Context) ([]store.Store, error) {
	return s.stores.ListStores(ctx, true)
}

// ListByOwner returns every store owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]store.Store, error) {
	return s.stores.ListStoresByOwner(ctx, ownerID)
}

// Update merges the provided fields into the stored row. Ownership never
// changes after creation.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id string, in UpdateInput) (store.Store, error) {
	st, err := s.stores.GetStore(ctx, id)
	if err != nil {
		return store.Store{}, err
	}
	if err := auth.CanManageStore(caller, st.OwnerID); err != nil {
		return store.Store{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return store.Store{}, apperr.Validation("store name is required")
		}
		st.Name = name
	}
	if in.Description != nil {
		st.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return store.Store{}, apperr.Validation("store category is required")
		}
		st.Category = category
	}
	if in.Address != nil {
		st.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		st.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}

	return s.stores.UpdateStore(ctx, st)
}

// Delete removes a store. Stores with live products, services, jobs or
// announcements cannot be deleted; the repository reports Conflict.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id string) error {
	st, err := s.stores.GetStore(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CanManageStore(caller, st.OwnerID); err != nil {
		return err
	}
	return s.stores.DeleteStore(ctx, id)
}
