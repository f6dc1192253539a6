package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage/memory"
)

func seed(t *testing.T, repo *memory.Store, username string, role user.Role) user.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), user.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func TestGetSelfOrAdmin(t *testing.T) {
	repo := memory.New()
	svc := NewService(repo)
	ctx := context.Background()

	alice := seed(t, repo, "alice", user.RoleCustomer)
	bob := seed(t, repo, "bob", user.RoleCustomer)
	root := seed(t, repo, "root", user.RoleAdmin)

	self := auth.Identity{UserID: alice.ID, Role: alice.Role}
	got, err := svc.Get(ctx, self, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = svc.Get(ctx, self, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "cross read: %v", err)

	_, err = svc.Get(ctx, auth.Identity{UserID: root.ID, Role: root.Role}, bob.ID)
	require.NoError(t, err)
}

func TestListAdminOnly(t *testing.T) {
	repo := memory.New()
	svc := NewService(repo)
	ctx := context.Background()

	alice := seed(t, repo, "alice", user.RoleCustomer)
	root := seed(t, repo, "root", user.RoleAdmin)

	_, err := svc.List(ctx, auth.Identity{UserID: alice.ID, Role: alice.Role})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "non-admin list: %v", err)

	all, err := svc.List(ctx, auth.Identity{UserID: root.ID, Role: root.Role})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateProfile(t *testing.T) {
	repo := memory.New()
	svc := NewService(repo)
	ctx := context.Background()

	alice := seed(t, repo, "alice", user.RoleCustomer)
	self := auth.Identity{UserID: alice.ID, Role: alice.Role}

	name := "Alice A."
	phone := "+964 770 000 0000"
	updated, err := svc.Update(ctx, self, alice.ID, UpdateInput{FullName: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, alice.Username, updated.Username)

	bad := "not-an-email"
	_, err = svc.Update(ctx, self, alice.ID, UpdateInput{Email: &bad})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "bad email: %v", err)
}

func TestDeactivateAdminOnly(t *testing.T) {
	repo := memory.New()
	svc := NewService(repo)
	ctx := context.Background()

	alice := seed(t, repo, "alice", user.RoleCustomer)
	root := seed(t, repo, "root", user.RoleAdmin)

	off := false
	_, err := svc.Update(ctx, auth.Identity{UserID: alice.ID, Role: alice.Role}, alice.ID, UpdateInput{IsActive: &off})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "self deactivate: %v", err)

	updated, err := svc.Update(ctx, auth.Identity{UserID: root.ID, Role: root.Role}, alice.ID, UpdateInput{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
