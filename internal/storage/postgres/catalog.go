package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/catalog"
)

// --- ProductRepository ------------------------------------------------------

const productColumns = `id, name, description, price, store_id, category, is_active, created_at`

func (s *Store) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, store_id, category, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, toNullString(p.Description), p.Price, p.StoreID, p.Category, p.IsActive, p.CreatedAt)
	if err != nil {
		return catalog.Product{}, translate(err, apperr.NotFound("product not found"))
	}
	return p, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	return scanProduct(row, apperr.NotFound("product %s not found", id))
}

func (s *Store) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, is_active = $6
		WHERE id = $1
	`, p.ID, p.Name, toNullString(p.Description), p.Price, p.Category, p.IsActive)
	if err != nil {
		return catalog.Product{}, translate(err, apperr.NotFound("product %s not found", p.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return catalog.Product{}, apperr.NotFound("product %s not found", p.ID)
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM products WHERE id = $1
	`, id)
	if err != nil {
		return translate(err, apperr.NotFound("product %s not found", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound("product %s not found", id)
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context, activeOnly bool) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE $1 = false OR is_active = true
		ORDER BY created_at
	`, activeOnly)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no products"))
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *Store) ListProductsByStore(ctx context.Context, storeID string) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE store_id = $1
		ORDER BY created_at
	`, storeID)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no products"))
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]catalog.Product, error) {
	var result []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows, apperr.NotFound("product not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanProduct(row rowScanner, notFound *apperr.Error) (catalog.Product, error) {
	var (
		p           catalog.Product
		description sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.StoreID, &p.Category, &p.IsActive, &p.CreatedAt); err != nil {
		return catalog.Product{}, translate(err, notFound)
	}
	p.Description = description.String
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

// --- ServiceRepository ------------------------------------------------------

const serviceColumns = `id, name, description, price, store_id, category, is_active, created_at`

func (s *Store) CreateService(ctx context.Context, sv catalog.Service) (catalog.Service, error) {
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	if sv.CreatedAt.IsZero() {
		sv.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO services (id, name, description, price, store_id, category, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, sv.ID, sv.Name, toNullString(sv.Description), toNullDecimal(sv.Price), sv.StoreID, sv.Category, sv.IsActive, sv.CreatedAt)
	if err != nil {
		return catalog.Service{}, translate(err, apperr.NotFound("service not found"))
	}
	return sv, nil
}

func (s *Store) GetService(ctx context.Context, id string) (catalog.Service, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = $1
	`, id)
	return scanService(row, apperr.NotFound("service %s not found", id))
}

func (s *Store) UpdateService(ctx context.Context, sv catalog.Service) (catalog.Service, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE services
		SET name = $2, description = $3, price = $4, category = $5, is_active = $6
		WHERE id = $1
	`, sv.ID, sv.Name, toNullString(sv.Description), toNullDecimal(sv.Price), sv.Category, sv.IsActive)
	if err != nil {
		return catalog.Service{}, translate(err, apperr.NotFound("service %s not found", sv.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return catalog.Service{}, apperr.NotFound("service %s not found", sv.ID)
	}
	return s.GetService(ctx, sv.ID)
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM services WHERE id = $1
	`, id)
	if err != nil {
		return translate(err, apperr.NotFound("service %s not found", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound("service %s not found", id)
	}
	return nil
}

func (s *Store) ListServices(ctx context.Context, activeOnly bool) ([]catalog.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE $1 = false OR is_active = true
		ORDER BY created_at
	`, activeOnly)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no services"))
	}
	defer rows.Close()
	return collectServices(rows)
}

func (s *Store) ListServicesByStore(ctx context.Context, storeID string) ([]catalog.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE store_id = $1
		ORDER BY created_at
	`, storeID)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no services"))
	}
	defer rows.Close()
	return collectServices(rows)
}

func collectServices(rows *sql.Rows) ([]catalog.Service, error) {
	var result []catalog.Service
	for rows.Next() {
		sv, err := scanService(rows, apperr.NotFound("service not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, sv)
	}
	return result, rows.Err()
}

func scanService(row rowScanner, notFound *apperr.Error) (catalog.Service, error) {
	var (
		sv          catalog.Service
		description sql.NullString
		price       decimal.NullDecimal
	)
	if err := row.Scan(&sv.ID, &sv.Name, &description, &price, &sv.StoreID, &sv.Category, &sv.IsActive, &sv.CreatedAt); err != nil {
		return catalog.Service{}, translate(err, notFound)
	}
	sv.Description = description.String
	if price.Valid {
		sv.Price = &price.Decimal
	}
	sv.CreatedAt = sv.CreatedAt.UTC()
	return sv, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
