package auth

import (
	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/user"
)

// Authorization rules. Each check returns nil when the caller is allowed
// and a Forbidden error otherwise, so handlers can return the result
// directly.

// CanCreateStore allows store owners and admins to open a store.
func CanCreateStore(id Identity) error {
	switch id.Role {
	case user.RoleStoreOwner, user.RoleAdmin:
		return nil
	default:
		return apperr.Forbidden("only store owners can create stores")
	}
}

// CanManageStore allows the owning user or an admin to modify a store
// and anything inside it.
func CanManageStore(id Identity, ownerID string) error {
	if id.Role == user.RoleAdmin {
		return nil
	}
	if id.Role == user.RoleStoreOwner && id.UserID == ownerID {
		return nil
	}
	return apperr.Forbidden("you do not own this store")
}

// CanManageUser allows a user to modify their own account, or an admin
// to modify anyone's.
func CanManageUser(id Identity, targetID string) error {
	if id.Role == user.RoleAdmin || id.UserID == targetID {
		return nil
	}
	return apperr.Forbidden("you can only modify your own account")
}

// CanListUsers restricts the full user listing to admins.
func CanListUsers(id Identity) error {
	if id.Role != user.RoleAdmin {
		return apperr.Forbidden("admin access required")
	}
	return nil
}
