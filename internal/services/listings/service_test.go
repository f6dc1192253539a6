package listings

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

func setup(t *testing.T) (*Service, store.Store, auth.Identity) {
	t.Helper()
	repo := memory.New()
	st, err := repo.CreateStore(context.Background(), store.Store{
		Name: "Souq", OwnerID: "owner", Category: "misc", IsActive: true,
	})
	require.NoError(t, err)
	return NewService(repo, repo, repo), st, auth.Identity{UserID: "owner", Role: user.RoleStoreOwner}
}

func TestJobLifecycle(t *testing.T) {
	svc, st, owner := setup(t)
	ctx := context.Background()

	salary := decimal.RequireFromString("750.00")
	j, err := svc.CreateJob(ctx, owner, JobInput{
		Title:    "cashier",
		Salary:   &salary,
		Location: "Baghdad",
		StoreID:  st.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, j.Salary)
	assert.True(t, j.Salary.Equal(salary))

	got, err := svc.GetJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, j, got)

	title := "senior cashier"
	updated, err := svc.UpdateJob(ctx, owner, j.ID, JobUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "Baghdad", updated.Location)

	require.NoError(t, svc.DeleteJob(ctx, owner, j.ID))
	_, err = svc.GetJob(ctx, j.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "after delete: %v", err)
}

func TestJobValidation(t *testing.T) {
	svc, st, owner := setup(t)
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, owner, JobInput{Title: "  ", StoreID: st.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "blank title: %v", err)

	negative := decimal.RequireFromString("-10")
	_, err = svc.CreateJob(ctx, owner, JobInput{Title: "cashier", Salary: &negative, StoreID: st.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "negative salary: %v", err)

	_, err = svc.CreateJob(ctx, owner, JobInput{Title: "cashier", StoreID: "missing"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "missing store: %v", err)
}

func TestJobOwnership(t *testing.T) {
	svc, st, _ := setup(t)
	ctx := context.Background()

	rival := auth.Identity{UserID: "rival", Role: user.RoleStoreOwner}
	_, err := svc.CreateJob(ctx, rival, JobInput{Title: "cashier", StoreID: st.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "rival create: %v", err)

	customer := auth.Identity{UserID: "cust", Role: user.RoleCustomer}
	_, err = svc.CreateJob(ctx, customer, JobInput{Title: "cashier", StoreID: st.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "customer create: %v", err)
}

func TestAnnouncementLifecycle(t *testing.T) {
	svc, st, owner := setup(t)
	ctx := context.Background()

	a, err := svc.CreateAnnouncement(ctx, owner, AnnouncementInput{
		Title:   "Eid opening hours",
		Content: "Open until midnight all week.",
		StoreID: st.ID,
	})
	require.NoError(t, err)
	assert.True(t, a.IsActive)

	_, err = svc.CreateAnnouncement(ctx, owner, AnnouncementInput{Title: "no content", StoreID: st.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "missing content: %v", err)

	content := "Closed for inventory."
	updated, err := svc.UpdateAnnouncement(ctx, owner, a.ID, AnnouncementUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, a.Title, updated.Title)

	off := false
	updated, err = svc.UpdateAnnouncement(ctx, owner, a.ID, AnnouncementUpdate{IsActive: &off})
	require.NoError(t, err)

	public, err := svc.ListAnnouncements(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	byStore, err := svc.ListAnnouncementsByStore(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, byStore, 1)
}
