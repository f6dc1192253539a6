package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/listing"
)

// --- JobRepository ----------------------------------------------------------

const jobColumns = `id, title, description, salary, location, store_id, is_active, created_at`

func (s *Store) CreateJob(ctx context.Context, j listing.Job) (listing.Job, error) {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, title, description, salary, location, store_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, j.ID, j.Title, toNullString(j.Description), toNullDecimal(j.Salary), toNullString(j.Location), j.StoreID, j.IsActive, j.CreatedAt)
	if err != nil {
		return listing.Job{}, translate(err, apperr.NotFound("job not found"))
	}
	return j, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (listing.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1
	`, id)
	return scanJob(row, apperr.NotFound("job %s not found", id))
}

func (s *Store) UpdateJob(ctx context.Context, j listing.Job) (listing.Job, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET title = $2, description = $3, salary = $4, location = $5, is_active = $6
		WHERE id = $1
	`, j.ID, j.Title, toNullString(j.Description), toNullDecimal(j.Salary), toNullString(j.Location), j.IsActive)
	if err != nil {
		return listing.Job{}, translate(err, apperr.NotFound("job %s not found", j.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return listing.Job{}, apperr.NotFound("job %s not found", j.ID)
	}
	return s.GetJob(ctx, j.ID)
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM jobs WHERE id = $1
	`, id)
	if err != nil {
		return translate(err, apperr.NotFound("job %s not found", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound("job %s not found", id)
	}
	return nil
}

func (s *Store) ListJobs(ctx context.Context, activeOnly bool) ([]listing.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE $1 = false OR is_active = true
		ORDER BY created_at
	`, activeOnly)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no jobs"))
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (s *Store) ListJobsByStore(ctx context.Context, storeID string) ([]listing.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE store_id = $1
		ORDER BY created_at
	`, storeID)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no jobs"))
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows *sql.Rows) ([]listing.Job, error) {
	var result []listing.Job
	for rows.Next() {
		j, err := scanJob(rows, apperr.NotFound("job not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	return result, rows.Err()
}

func scanJob(row rowScanner, notFound *apperr.Error) (listing.Job, error) {
	var (
		j                     listing.Job
		description, location sql.NullString
		salary                decimal.NullDecimal
	)
	if err := row.Scan(&j.ID, &j.Title, &description, &salary, &location, &j.StoreID, &j.IsActive, &j.CreatedAt); err != nil {
		return listing.Job{}, translate(err, notFound)
	}
	j.Description = description.String
	j.Location = location.String
	if salary.Valid {
		j.Salary = &salary.Decimal
	}
	j.CreatedAt = j.CreatedAt.UTC()
	return j, nil
}

// --- AnnouncementRepository -------------------------------------------------

const announcementColumns = `id, title, content, store_id, is_active, created_at`

func (s *Store) CreateAnnouncement(ctx context.Context, a listing.Announcement) (listing.Announcement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO announcements (id, title, content, store_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Title, a.Content, a.StoreID, a.IsActive, a.CreatedAt)
	if err != nil {
		return listing.Announcement{}, translate(err, apperr.NotFound("announcement not found"))
	}
	return a, nil
}

func (s *Store) GetAnnouncement(ctx context.Context, id string) (listing.Announcement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		WHERE id = $1
	`, id)
	return scanAnnouncement(row, apperr.NotFound("announcement %s not found", id))
}

func (s *Store) UpdateAnnouncement(ctx context.Context, a listing.Announcement) (listing.Announcement, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE announcements
		SET title = $2, content = $3, is_active = $4
		WHERE id = $1
	`, a.ID, a.Title, a.Content, a.IsActive)
	if err != nil {
		return listing.Announcement{}, translate(err, apperr.NotFound("announcement %s not found", a.ID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return listing.Announcement{}, apperr.NotFound("announcement %s not found", a.ID)
	}
	return s.GetAnnouncement(ctx, a.ID)
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM announcements WHERE id = $1
	`, id)
	if err != nil {
		return translate(err, apperr.NotFound("announcement %s not found", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound("announcement %s not found", id)
	}
	return nil
}

func (s *Store) ListAnnouncements(ctx context.Context, activeOnly bool) ([]listing.Announcement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		WHERE $1 = false OR is_active = true
		ORDER BY created_at
	`, activeOnly)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no announcements"))
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

func (s *Store) ListAnnouncementsByStore(ctx context.Context, storeID string) ([]listing.Announcement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		WHERE store_id = $1
		ORDER BY created_at
	`, storeID)
	if err != nil {
		return nil, translate(err, apperr.NotFound("no announcements"))
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

func collectAnnouncements(rows *sql.Rows) ([]listing.Announcement, error) {
	var result []listing.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows, apperr.NotFound("announcement not found"))
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func scanAnnouncement(row rowScanner, notFound *apperr.Error) (listing.Announcement, error) {
	var a listing.Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.StoreID, &a.IsActive, &a.CreatedAt); err != nil {
		return listing.Announcement{}, translate(err, notFound)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
