// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage"
)

// Postgres error classes used to translate constraint violations.
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// Store implements the storage interfaces over a pooled *sql.DB.
type Store struct {
	db *sql.DB
}

var _ storage.UserRepository = (*Store)(nil)
var _ storage.StoreRepository = (*Store)(nil)
var _ storage.ProductRepository = (*Store)(nil)
var _ storage.ServiceRepository = (*Store)(nil)
var _ storage.JobRepository = (*Store)(nil)
var _ storage.AnnouncementRepository = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to Postgres, applies pool limits and verifies the connection.
func Open(dsn string, maxOpen, maxIdle int, maxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// translate maps driver errors onto the shared taxonomy. notFound is used
// for sql.ErrNoRows; constraint violations become Conflict.
func translate(err error, notFound *apperr.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return apperr.Conflict(constraintMessage(pqErr.Constraint)).Wrap(err)
		case pqForeignKeyViolation:
			return apperr.Conflict("record has dependent or missing references").Wrap(err)
		}
	}
	return apperr.Internal("database error", err)
}

func constraintMessage(constraint string) string {
	switch constraint {
	case "users_username_key":
		return "username already exists"
	case "users_email_key":
		return "email already exists"
	default:
		return "duplicate record"
	}
}

// --- UserRepository ---------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, phone, is_active, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, toNullString(u.Phone), u.IsActive, string(u.Role), u.CreatedAt)
	if err != nil {
		return user.User{}, translate(err, apperr.NotFound("user not found"))
	}
	return u, nil
}

const userColumns = `id, username, email, password_hash, full_name, phone, is_active, role, created_at`

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row, apperr.NotFound("user %s not found", id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(username) = lower($1)
	`, username)
	return scanUser(row, apperr.NotFound("user %s not found", username))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	return scanUser(row, apperr.NotFound("user %s not found", email))
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2, full_name = $3, phone = $4, is_active = $5, role = $6
		WHERE id = $1
	`, u.ID, u.Email, u.FullName, toNullString(u.Phone), u.IsActive, string(u.Role))
	if err != nil {
		return user.User{}, translate(err, apperr.NotFound("user %s not found", u.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return user.User{}, apperr.NotFound("user %s not found", u.ID)
	}
	return s.GetUser(ctx, u.ID)
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no users"))
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		u, err := scanUser(rows, apperr.NotFound("user not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, notFound *apperr.Error) (user.User, error) {
	var (
		u     user.User
		phone sql.NullString
		role  string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &phone, &u.IsActive, &role, &u.CreatedAt); err != nil {
		return user.User{}, translate(err, notFound)
	}
	u.Phone = phone.String
	u.Role = user.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// --- StoreRepository --------------------------------------------------------

const storeColumns = `id, name, description, owner_id, category, address, phone, is_active, created_at`

func (s *Store) CreateStore(ctx context.Context, st store.Store) (store.Store, error) {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, description, owner_id, category, address, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, st.ID, st.Name, toNullString(st.Description), st.OwnerID, st.Category, toNullString(st.Address), toNullString(st.Phone), st.IsActive, st.CreatedAt)
	if err != nil {
		return store.Store{}, translate(err, apperr.NotFound("store not found"))
	}
	return st, nil
}

func (s *Store) GetStore(ctx context.Context, id string) (store.Store, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE id = $1
	`, id)
	return scanStore(row, apperr.NotFound("store %s not found", id))
}

func (s *Store) UpdateStore(ctx context.Context, st store.Store) (store.Store, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE stores
		SET name = $2, description = $3, category = $4, address = $5, phone = $6, is_active = $7
		WHERE id = $1
	`, st.ID, st.Name, toNullString(st.Description), st.Category, toNullString(st.Address), toNullString(st.Phone), st.IsActive)
	if err != nil {
		return store.Store{}, translate(err, apperr.NotFound("store %s not found", st.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return store.Store{}, apperr.NotFound("store %s not found", st.ID)
	}
	return s.GetStore(ctx, st.ID)
}

func (s *Store) DeleteStore(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM stores WHERE id = $1
	`, id)
	if err != nil {
		return translate(err, apperr.NotFound("store %s not found", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound("store %s not found", id)
	}
	return nil
}

func (s *Store) ListStores(ctx context.Context, activeOnly bool) ([]store.Store, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE $1 = false OR is_active = true
		ORDER BY created_at
	`, activeOnly)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no stores"))
	}
	defer rows.Close()
	return collectStores(rows)
}

func (s *Store) ListStoresByOwner(ctx context.Context, ownerID string) ([]store.Store, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no stores"))
	}
	defer rows.Close()
	return collectStores(rows)
}

func collectStores(rows *sql.Rows) ([]store.Store, error) {
	var result []store.Store
	for rows.Next() {
		st, err := scanStore(rows, apperr.NotFound("store not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

func scanStore(row rowScanner, notFound *apperr.Error) (store.Store, error) {
	var (
		st                       store.Store
		description, addr, phone sql.NullString
	)
	if err := row.Scan(&st.ID, &st.Name, &description, &st.OwnerID, &st.Category, &addr, &phone, &st.IsActive, &st.CreatedAt); err != nil {
		return store.Store{}, translate(err, notFound)
	}
	st.Description = description.String
	st.Address = addr.String
	st.Phone = phone.String
	st.CreatedAt = st.CreatedAt.UTC()
	return st, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
