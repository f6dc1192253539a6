// Package users manages account profiles. Accounts are created through the
// auth flow; this service only reads and updates them. There is no hard
// delete anywhere, deactivation is the admin's off switch.
package users

import (
	"context"
	"net/mail"
	"strings"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage"
)

// UpdateInput carries the profile fields a client may change. Nil fields
// are left untouched. IsActive is admin-only.
type UpdateInput struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

type Service struct {
	users storage.UserRepository
}

func NewService(users storage.UserRepository) *Service {
	return &Service{users: users}
}

// Get returns a single account, visible to the account itself and admins.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id string) (user.User, error) {
	if err := auth.CanManageUser(caller, id); err != nil {
		return user.User{}, err
	}
	return s.users.GetUser(ctx, id)
}

// List returns every account. Admin only.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]user.User, error) {
	if err := auth.CanListUsers(caller); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

// Update merges the provided profile fields into the stored account.
// Username, role and password never change through this path.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id string, in UpdateInput) (user.User, error) {
	if err := auth.CanManageUser(caller, id); err != nil {
		return user.User{}, err
	}

	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return user.User{}, apperr.Validation("full name is required")
		}
		u.FullName = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return user.User{}, apperr.Validation("invalid email address")
		}
		u.Email = email
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.IsActive != nil {
		if caller.Role != user.RoleAdmin {
			return user.User{}, apperr.Forbidden("only admins can change account status")
		}
		u.IsActive = *in.IsActive
	}

	return s.users.UpdateUser(ctx, u)
}
