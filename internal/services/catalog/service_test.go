package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage/memory"
)

type fixture struct {
	svc   *Service
	repo  *memory.Store
	amira auth.Identity
	basim auth.Identity
	admin auth.Identity

	amiraStore store.Store
	basimStore store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()

	amiraStore, err := repo.CreateStore(ctx, store.Store{Name: "Amira Sweets", OwnerID: "amira", Category: "food", IsActive: true})
	require.NoError(t, err)
	basimStore, err := repo.CreateStore(ctx, store.Store{Name: "Basim Tools", OwnerID: "basim", Category: "hardware", IsActive: true})
	require.NoError(t, err)

	return &fixture{
		svc:        NewService(repo, repo, repo),
		repo:       repo,
		amira:      auth.Identity{UserID: "amira", Role: user.RoleStoreOwner},
		basim:      auth.Identity{UserID: "basim", Role: user.RoleStoreOwner},
		admin:      auth.Identity{UserID: "root", Role: user.RoleAdmin},
		amiraStore: amiraStore,
		basimStore: basimStore,
	}
}

func TestCreateProductOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Amira can stock her own store.
	p, err := f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:     "baklava",
		Price:    decimal.RequireFromString("12.50"),
		StoreID:  f.amiraStore.ID,
		Category: "sweets",
	})
	require.NoError(t, err)
	assert.Equal(t, f.amiraStore.ID, p.StoreID)
	assert.True(t, p.IsActive)

	// Owning a store of her own does not let her touch Basim's.
	_, err = f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:     "hammer",
		Price:    decimal.RequireFromString("8.00"),
		StoreID:  f.basimStore.ID,
		Category: "hardware",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "err = %v", err)

	// Admin can.
	_, err = f.svc.CreateProduct(ctx, f.admin, ProductInput{
		Name:     "hammer",
		Price:    decimal.RequireFromString("8.00"),
		StoreID:  f.basimStore.ID,
		Category: "hardware",
	})
	require.NoError(t, err)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:     " ",
		Price:    decimal.NewFromInt(1),
		StoreID:  f.amiraStore.ID,
		Category: "sweets",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "empty name: %v", err)

	_, err = f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:     "baklava",
		Price:    decimal.RequireFromString("-0.01"),
		StoreID:  f.amiraStore.ID,
		Category: "sweets",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "negative price: %v", err)

	_, err = f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:     "baklava",
		Price:    decimal.NewFromInt(1),
		StoreID:  "missing-store",
		Category: "sweets",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "missing store: %v", err)
}

func TestUpdateProductCrossOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, f.basim, ProductInput{
		Name:     "hammer",
		Price:    decimal.RequireFromString("8.00"),
		StoreID:  f.basimStore.ID,
		Category: "hardware",
	})
	require.NoError(t, err)

	newName := "sledgehammer"
	_, err = f.svc.UpdateProduct(ctx, f.amira, p.ID, ProductUpdate{Name: &newName})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "err = %v", err)

	err = f.svc.DeleteProduct(ctx, f.amira, p.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "err = %v", err)

	updated, err := f.svc.UpdateProduct(ctx, f.admin, p.ID, ProductUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "sledgehammer", updated.Name)
	assert.True(t, updated.Price.Equal(p.Price), "price should be untouched")

	require.NoError(t, f.svc.DeleteProduct(ctx, f.basim, p.ID))
	_, err = f.svc.GetProduct(ctx, p.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "err = %v", err)
}

func TestProductRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name:        "baklava",
		Description: "pistachio",
		Price:       decimal.RequireFromString("12.50"),
		StoreID:     f.amiraStore.ID,
		Category:    "sweets",
	})
	require.NoError(t, err)

	got, err := f.svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestListProductsFiltersInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active, err := f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name: "baklava", Price: decimal.NewFromInt(10), StoreID: f.amiraStore.ID, Category: "sweets",
	})
	require.NoError(t, err)
	hidden, err := f.svc.CreateProduct(ctx, f.amira, ProductInput{
		Name: "knafeh", Price: decimal.NewFromInt(9), StoreID: f.amiraStore.ID, Category: "sweets",
	})
	require.NoError(t, err)

	off := false
	_, err = f.svc.UpdateProduct(ctx, f.amira, hidden.ID, ProductUpdate{IsActive: &off})
	require.NoError(t, err)

	list, err := f.svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	// Detail fetch still returns the hidden row.
	got, err := f.svc.GetProduct(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// The per-store listing is unfiltered, the owner manages through it.
	byStore, err := f.svc.ListProductsByStore(ctx, f.amiraStore.ID)
	require.NoError(t, err)
	assert.Len(t, byStore, 2)
}

func TestServiceOptionalPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateService(ctx, f.amira, ServiceInput{
		Name:     "delivery",
		StoreID:  f.amiraStore.ID,
		Category: "logistics",
	})
	require.NoError(t, err)
	assert.Nil(t, created.Price)

	price := decimal.RequireFromString("5.00")
	updated, err := f.svc.UpdateService(ctx, f.amira, created.ID, ServiceUpdate{Price: &price})
	require.NoError(t, err)
	require.NotNil(t, updated.Price)
	assert.True(t, updated.Price.Equal(price))

	negative := decimal.RequireFromString("-1")
	_, err = f.svc.UpdateService(ctx, f.amira, created.ID, ServiceUpdate{Price: &negative})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "err = %v", err)
}
