package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage"
)

// Identity is the authenticated caller attached to each request.
type Identity struct {
	UserID string
	Role   user.Role
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// Service issues and verifies sessions against the user repository.
type Service struct {
	users      storage.UserRepository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewService(users storage.UserRepository, secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	return &Service{
		users:      users,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Register validates the input, stores the new account and returns a session
// so the client is signed in immediately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)

	if len(in.Username) < 3 {
		return Session{}, apperr.Validation("username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return Session{}, apperr.Validation("invalid email address")
	}
	if len(in.Password) < 6 {
		return Session{}, apperr.Validation("password must be at least 6 characters")
	}
	if in.FullName == "" {
		return Session{}, apperr.Validation("full name is required")
	}
	role, err := user.ParseRole(in.Role)
	if err != nil {
		return Session{}, apperr.Validation("invalid role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return Session{}, apperr.Internal("hash password", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return Session{}, err
	}

	token, err := signToken(created, s.secret, s.tokenTTL, s.now())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: created}, nil
}

// Login checks credentials by username first, then by email. Unknown
// accounts, inactive accounts and wrong passwords all produce the same
// error so callers cannot probe which accounts exist.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, apperr.Validation("username and password are required")
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindNotFound) {
			return Session{}, err
		}
		u, err = s.users.GetUserByEmail(ctx, username)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return Session{}, apperr.Unauthenticated("invalid credentials")
			}
			return Session{}, err
		}
	}

	if !u.IsActive {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}

	token, err := signToken(u, s.secret, s.tokenTTL, s.now())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: u}, nil
}

// Resolve turns a bearer token into the caller's identity. The account is
// reloaded so deactivated users lose access even with a valid token.
func (s *Service) Resolve(ctx context.Context, token string) (Identity, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return Identity{}, err
	}

	u, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return Identity{}, apperr.Unauthenticated("invalid token")
		}
		return Identity{}, err
	}
	if !u.IsActive {
		return Identity{}, apperr.Unauthenticated("account is inactive")
	}

	return Identity{UserID: u.ID, Role: u.Role}, nil
}
