// Package listings manages the non-catalog postings of a store: job offers
// and announcements.
package listings

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/domain/listing"
	"github.com/souqhub/marketplace/internal/storage"
)

// JobInput carries the fields accepted when posting a job.
type JobInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Salary      *decimal.Decimal `json:"salary"`
	Location    string           `json:"location"`
	StoreID     string           `json:"storeId"`
}

// JobUpdate carries partial job changes. Nil fields are untouched.
type JobUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Salary      *decimal.Decimal `json:"salary"`
	Location    *string          `json:"location"`
	IsActive    *bool            `json:"isActive"`
}

// AnnouncementInput carries the fields accepted when publishing a notice.
type AnnouncementInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	StoreID string `json:"storeId"`
}

// AnnouncementUpdate carries partial announcement changes.
type AnnouncementUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"isActive"`
}

type Service struct {
	jobs          storage.JobRepository
	announcements storage.AnnouncementRepository
	stores        storage.StoreRepository
}

func NewService(jobs storage.JobRepository, announcements storage.AnnouncementRepository, stores storage.StoreRepository) *Service {
	return &Service{jobs: jobs, announcements: announcements, stores: stores}
}

func (s *Service) requireStoreAccess(ctx context.Context, caller auth.Identity, storeID string) error {
	st, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.Validation("store %s does not exist", storeID)
		}
		return err
	}
	return auth.CanManageStore(caller, st.OwnerID)
}

func (s *Service) CreateJob(ctx context.Context, caller auth.Identity, in JobInput) (listing.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return listing.Job{}, apperr.Validation("job title is required")
	}
	if in.Salary != nil && in.Salary.IsNegative() {
		return listing.Job{}, apperr.Validation("salary must not be negative")
	}
	if err := s.requireStoreAccess(ctx, caller, in.StoreID); err != nil {
		return listing.Job{}, err
	}

	return s.jobs.CreateJob(ctx, listing.Job{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Salary:      in.Salary,
		Location:    strings.TrimSpace(in.Location),
		StoreID:     in.StoreID,
		IsActive:    true,
	})
}

func (s *Service) GetJob(ctx context.Context, id string) (listing.Job, error) {
	return s.jobs.GetJob(ctx, id)
}

func (s *Service) ListJobs(ctx context.Context) ([]listing.Job, error) {
	return s.jobs.ListJobs(ctx, true)
}

func (s *Service) ListJobsByStore(ctx context.Context, storeID string) ([]listing.Job, error) {
	return s.jobs.ListJobsByStore(ctx, storeID)
}

func (s *Service) UpdateJob(ctx context.Context, caller auth.Identity, id string, in JobUpdate) (listing.Job, error) {
	j, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return listing.Job{}, err
	}
	if err := s.requireStoreAccess(ctx, caller, j.StoreID); err != nil {
		return listing.Job{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return listing.Job{}, apperr.Validation("job title is required")
		}
		j.Title = title
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Salary != nil {
		if in.Salary.IsNegative() {
			return listing.Job{}, apperr.Validation("salary must not be negative")
		}
		salary := *in.Salary
		j.Salary = &salary
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}

	return s.jobs.UpdateJob(ctx, j)
}

func (s *Service) DeleteJob(ctx context.Context, caller auth.Identity, id string) error {
	j, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireStoreAccess(ctx, caller, j.StoreID); err != nil {
		return err
	}
	return s.jobs.DeleteJob(ctx, id)
}

func (s *Service) CreateAnnouncement(ctx context.Context, caller auth.Identity, in AnnouncementInput) (listing.Announcement, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" {
		return listing.Announcement{}, apperr.Validation("announcement title is required")
	}
	if in.Content == "" {
		return listing.Announcement{}, apperr.Validation("announcement content is required")
	}
	if err := s.requireStoreAccess(ctx, caller, in.StoreID); err != nil {
		return listing.Announcement{}, err
	}

	return s.announcements.CreateAnnouncement(ctx, listing.Announcement{
		Title:    in.Title,
		Content:  in.Content,
		StoreID:  in.StoreID,
		IsActive: true,
	})
}

func (s *Service) GetAnnouncement(ctx context.Context, id string) (listing.Announcement, error) {
	return s.announcements.GetAnnouncement(ctx, id)
}

func (s *Service) ListAnnouncements(ctx context.Context) ([]listing.Announcement, error) {
	return s.announcements.ListAnnouncements(ctx, true)
}

func (s *Service) ListAnnouncementsByStore(ctx context.Context, storeID string) ([]listing.Announcement, error) {
	return s.announcements.ListAnnouncementsByStore(ctx, storeID)
}

func (s *Service) UpdateAnnouncement(ctx context.Context, caller auth.Identity, id string, in AnnouncementUpdate) (listing.Announcement, error) {
	a, err := s.announcements.GetAnnouncement(ctx, id)
	if err != nil {
		return listing.Announcement{}, err
	}
	if err := s.requireStoreAccess(ctx, caller, a.StoreID); err != nil {
		return listing.Announcement{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return listing.Announcement{}, apperr.Validation("announcement title is required")
		}
		a.Title = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return listing.Announcement{}, apperr.Validation("announcement content is required")
		}
		a.Content = content
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}

	return s.announcements.UpdateAnnouncement(ctx, a)
}

func (s *Service) DeleteAnnouncement(ctx context.Context, caller auth.Identity, id string) error {
	a, err := s.announcements.GetAnnouncement(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireStoreAccess(ctx, caller, a.StoreID); err != nil {
		return err
	}
	return s.announcements.DeleteAnnouncement(ctx, id)
}
