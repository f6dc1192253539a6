package memory

import (
	"context"
	"testing"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/catalog"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
)

func TestCreateUserDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, user.User{Username: "amira", Email: "amira@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := s.CreateUser(ctx, user.User{Username: "AMIRA", Email: "other@example.com"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("duplicate username err = %v, want conflict", err)
	}
	_, err = s.CreateUser(ctx, user.User{Username: "other", Email: "Amira@Example.com"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("duplicate email err = %v, want conflict", err)
	}
}

func TestUpdateUserPreservesUsername(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, user.User{Username: "amira", Email: "amira@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed := created
	changed.Username = "renamed"
	changed.FullName = "Amira H."
	updated, err := s.UpdateUser(ctx, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "amira" {
		t.Fatalf("username changed to %q", updated.Username)
	}
	if updated.FullName != "Amira H." {
		t.Fatalf("full name not updated")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("created_at changed on update")
	}
}

func TestDeleteStoreWithChildren(t *testing.T) {
	s := New()
	ctx := context.Background()

	st, err := s.CreateStore(ctx, store.Store{Name: "Souq", OwnerID: "u1", Category: "misc"})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := s.CreateProduct(ctx, catalog.Product{Name: "baklava", StoreID: st.ID}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := s.DeleteStore(ctx, st.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("delete with children err = %v, want conflict", err)
	}

	products, _ := s.ListProductsByStore(ctx, st.ID)
	if err := s.DeleteProduct(ctx, products[0].ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := s.DeleteStore(ctx, st.ID); err != nil {
		t.Fatalf("delete empty store: %v", err)
	}
}

func TestCreateProductRequiresStore(t *testing.T) {
	s := New()

	_, err := s.CreateProduct(context.Background(), catalog.Product{Name: "baklava", StoreID: "missing"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestListOrderIsInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, _ := s.CreateStore(ctx, store.Store{Name: "first", OwnerID: "u1", Category: "misc", IsActive: true})
	second, _ := s.CreateStore(ctx, store.Store{Name: "second", OwnerID: "u1", Category: "misc", IsActive: true})

	list, err := s.ListStores(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
}
