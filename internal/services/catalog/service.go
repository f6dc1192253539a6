// Package catalog manages the sellable entities of a store: products and
// offered services. Both follow the same lifecycle; they differ only in
// whether a price is mandatory.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/catalog"
	"github.com/souqhub/marketplace/internal/storage"
)

// ProductInput carries the fields accepted when creating a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StoreID     string          `json:"storeId"`
	Category    string          `json:"category"`
}

// ProductUpdate carries partial product changes. Nil fields are untouched.
// The product cannot move between stores.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	IsActive    *bool            `json:"isActive"`
}

// ServiceInput carries the fields accepted when creating an offered
// service. Price may be omitted.
type ServiceInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	StoreID     string           `json:"storeId"`
	Category    string           `json:"category"`
}

// ServiceUpdate carries partial service changes. A provided price replaces
// the stored one; an absent field leaves it alone.
type ServiceUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	IsActive    *bool            `json:"isActive"`
}

type Service struct {
	products storage.ProductRepository
	services storage.ServiceRepository
	stores   storage.StoreRepository
}

func NewService(products storage.ProductRepository, services storage.ServiceRepository, stores storage.StoreRepository) *Service {
	return &Service{products: products, services: services, stores: stores}
}

// requireStoreAccess loads the target store and checks the caller may
// manage its contents. A missing store is a validation failure, not a 404:
// the request referenced a parent that does not exist.
func (s *Service) requireStoreAccess(ctx context.Context, caller auth.Identity, storeID string) error {
	st, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.Validation("store %s does not exist", storeID)
		}
		return err
	}
	return auth.CanManageStore(caller, st.OwnerID)
}

func (s *Service) CreateProduct(ctx context.Context, caller auth.Identity, in ProductInput) (catalog.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return catalog.Product{}, apperr.Validation("product name is required")
	}
	if in.Category == "" {
		return catalog.Product{}, apperr.Validation("product category is required")
	}
	if in.Price.IsNegative() {
		return catalog.Product{}, apperr.Validation("price must not be negative")
	}
	if err := s.requireStoreAccess(ctx, caller, in.StoreID); err != nil {
		return catalog.Product{}, err
	}

	return s.products.CreateProduct(ctx, catalog.Product{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		StoreID:     in.StoreID,
		Category:    in.Category,
		IsActive:    true,
	})
}

func (s *Service) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.products.ListProducts(ctx, true)
}

func (s *Service) ListProductsByStore(ctx context.Context, storeID string) ([]catalog.Product, error) {
	return s.products.ListProductsByStore(ctx, storeID)
}

func (s *Service) UpdateProduct(ctx context.Context, caller auth.Identity, id string, in ProductUpdate) (catalog.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	if err := s.requireStoreAccess(ctx, caller, p.StoreID); err != nil {
		return catalog.Product{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return catalog.Product{}, apperr.Validation("product name is required")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return catalog.Product{}, apperr.Validation("price must not be negative")
		}
		p.Price = *in.Price
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return catalog.Product{}, apperr.Validation("product category is required")
		}
		p.Category = category
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	return s.products.UpdateProduct(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, caller auth.Identity, id string) error {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireStoreAccess(ctx, caller, p.StoreID); err != nil {
		return err
	}
	return s.products.DeleteProduct(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, caller auth.Identity, in ServiceInput) (catalog.Service, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return catalog.Service{}, apperr.Validation("service name is required")
	}
	if in.Category == "" {
		return catalog.Service{}, apperr.Validation("service category is required")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return catalog.Service{}, apperr.Validation("price must not be negative")
	}
	if err := s.requireStoreAccess(ctx, caller, in.StoreID); err != nil {
		return catalog.Service{}, err
	}

	return s.services.CreateService(ctx, catalog.Service{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		StoreID:     in.StoreID,
		Category:    in.Category,
		IsActive:    true,
	})
}

func (s *Service) GetService(ctx context.Context, id string) (catalog.Service, error) {
	return s.services.GetService(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]catalog.Service, error) {
	return s.services.ListServices(ctx, true)
}

func (s *Service) ListServicesByStore(ctx context.Context, storeID string) ([]catalog.Service, error) {
	return s.services.ListServicesByStore(ctx, storeID)
}

func (s *Service) UpdateService(ctx context.Context, caller auth.Identity, id string, in ServiceUpdate) (catalog.Service, error) {
	svc, err := s.services.GetService(ctx, id)
	if err != nil {
		return catalog.Service{}, err
	}
	if err := s.requireStoreAccess(ctx, caller, svc.StoreID); err != nil {
		return catalog.Service{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return catalog.Service{}, apperr.Validation("service name is required")
		}
		svc.Name = name
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return catalog.Service{}, apperr.Validation("price must not be negative")
		}
		price := *in.Price
		svc.Price = &price
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return catalog.Service{}, apperr.Validation("service category is required")
		}
		svc.Category = category
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	return s.services.UpdateService(ctx, svc)
}

func (s *Service) DeleteService(ctx context.Context, caller auth.Identity, id string) error {
	svc, err := s.services.GetService(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireStoreAccess(ctx, caller, svc.StoreID); err != nil {
		return err
	}
	return s.services.DeleteService(ctx, id)
}
