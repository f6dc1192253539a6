// Package storage declares the persistence interfaces the services depend
// on. The postgres package is the production implementation; memory backs
// the tests.
package storage

import (
	"context"

	"github.com/souqhub/marketplace/internal/domain/catalog"
	"github.com/souqhub/marketplace/internal/domain/listing"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
)

// UserRepository persists accounts. Users are never hard-deleted; admins
// deactivate them instead.
type UserRepository interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// StoreRepository persists storefronts.
type StoreRepository interface {
	CreateStore(ctx context.Context, s store.Store) (store.Store, error)
	GetStore(ctx context.Context, id string) (store.Store, error)
	UpdateStore(ctx context.Context, s store.Store) (store.Store, error)
	DeleteStore(ctx context.Context, id string) error
	ListStores(ctx context.Context, activeOnly bool) ([]store.Store, error)
	ListStoresByOwner(ctx context.Context, ownerID string) ([]store.Store, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, activeOnly bool) ([]catalog.Product, error)
	ListProductsByStore(ctx context.Context, storeID string) ([]catalog.Product, error)
}

// ServiceRepository persists offered services.
type ServiceRepository interface {
	CreateService(ctx context.Context, s catalog.Service) (catalog.Service, error)
	GetService(ctx context.Context, id string) (catalog.Service, error)
	UpdateService(ctx context.Context, s catalog.Service) (catalog.Service, error)
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context, activeOnly bool) ([]catalog.Service, error)
	ListServicesByStore(ctx context.Context, storeID string) ([]catalog.Service, error)
}

// JobRepository persists job postings.
type JobRepository interface {
	CreateJob(ctx context.Context, j listing.Job) (listing.Job, error)
	GetJob(ctx context.Context, id string) (listing.Job, error)
	UpdateJob(ctx context.Context, j listing.Job) (listing.Job, error)
	DeleteJob(ctx context.Context, id string) error
	ListJobs(ctx context.Context, activeOnly bool) ([]listing.Job, error)
	ListJobsByStore(ctx context.Context, storeID string) ([]listing.Job, error)
}

// AnnouncementRepository persists announcements.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, a listing.Announcement) (listing.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (listing.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a listing.Announcement) (listing.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]listing.Announcement, error)
	ListAnnouncementsByStore(ctx context.Context, storeID string) ([]listing.Announcement, error)
}
