// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/catalog"
	"github.com/souqhub/marketplace/internal/domain/listing"
	"github.com/souqhub/marketplace/internal/domain/store"
	"github.com/souqhub/marketplace/internal/domain/user"
	"github.com/souqhub/marketplace/internal/storage"
)

// Store implements every repository interface over plain maps. Insertion
// order is preserved so listings are deterministic.
type Store struct {
	mu sync.RWMutex

	users     map[string]user.User
	userOrder []string

	stores     map[string]store.Store
	storeOrder []string

	products     map[string]catalog.Product
	productOrder []string

	services     map[string]catalog.Service
	serviceOrder []string

	jobs     map[string]listing.Job
	jobOrder []string

	announcements     map[string]listing.Announcement
	announcementOrder []string
}

var _ storage.UserRepository = (*Store)(nil)
var _ storage.StoreRepository = (*Store)(nil)
var _ storage.ProductRepository = (*Store)(nil)
var _ storage.ServiceRepository = (*Store)(nil)
var _ storage.JobRepository = (*Store)(nil)
var _ storage.AnnouncementRepository = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:         make(map[string]user.User),
		stores:        make(map[string]store.Store),
		products:      make(map[string]catalog.Product),
		services:      make(map[string]catalog.Service),
		jobs:          make(map[string]listing.Job),
		announcements: make(map[string]listing.Announcement),
	}
}

// --- UserRepository ---------------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return user.User{}, apperr.Conflict("username already exists")
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, apperr.Conflict("email already exists")
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, apperr.NotFound("user %s not found", id)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if strings.EqualFold(s.users[id].Username, username) {
			return s.users[id], nil
		}
	}
	return user.User{}, apperr.NotFound("user %s not found", username)
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if strings.EqualFold(s.users[id].Email, email) {
			return s.users[id], nil
		}
	}
	return user.User{}, apperr.NotFound("user %s not found", email)
}

func (s *Store) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return user.User{}, apperr.NotFound("user %s not found", u.ID)
	}
	for id, other := range s.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return user.User{}, apperr.Conflict("email already exists")
		}
	}

	u.Username = existing.Username
	u.CreatedAt = existing.CreatedAt
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		result = append(result, s.users[id])
	}
	return result, nil
}

// --- StoreRepository --------------------------------------------------------

func (s *Store) CreateStore(_ context.Context, st store.Store) (store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}

	s.stores[st.ID] = st
	s.storeOrder = append(s.storeOrder, st.ID)
	return st, nil
}

func (s *Store) GetStore(_ context.Context, id string) (store.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stores[id]
	if !ok {
		return store.Store{}, apperr.NotFound("store %s not found", id)
	}
	return st, nil
}

func (s *Store) UpdateStore(_ context.Context, st store.Store) (store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.stores[st.ID]
	if !ok {
		return store.Store{}, apperr.NotFound("store %s not found", st.ID)
	}
	st.OwnerID = existing.OwnerID
	st.CreatedAt = existing.CreatedAt
	s.stores[st.ID] = st
	return st, nil
}

func (s *Store) DeleteStore(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[id]; !ok {
		return apperr.NotFound("store %s not found", id)
	}
	for _, p := range s.products {
		if p.StoreID == id {
			return apperr.Conflict("store has dependent records")
		}
	}
	for _, sv := range s.services {
		if sv.StoreID == id {
			return apperr.Conflict("store has dependent records")
		}
	}
	for _, j := range s.jobs {
		if j.StoreID == id {
			return apperr.Conflict("store has dependent records")
		}
	}
	for _, a := range s.announcements {
		if a.StoreID == id {
			return apperr.Conflict("store has dependent records")
		}
	}

	delete(s.stores, id)
	s.storeOrder = remove(s.storeOrder, id)
	return nil
}

func (s *Store) ListStores(_ context.Context, activeOnly bool) ([]store.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []store.Store
	for _, id := range s.storeOrder {
		st := s.stores[id]
		if activeOnly && !st.IsActive {
			continue
		}
		result = append(result, st)
	}
	return result, nil
}

func (s *Store) ListStoresByOwner(_ context.Context, ownerID string) ([]store.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []store.Store
	for _, id := range s.storeOrder {
		if s.stores[id].OwnerID == ownerID {
			result = append(result, s.stores[id])
		}
	}
	return result, nil
}

// --- ProductRepository ------------------------------------------------------

func (s *Store) CreateProduct(_ context.Context, p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[p.StoreID]; !ok {
		return catalog.Product{}, apperr.Validation("store %s does not exist", p.StoreID)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
	return p, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, apperr.NotFound("product %s not found", id)
	}
	return p, nil
}

func (s *Store) UpdateProduct(_ context.Context, p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return catalog.Product{}, apperr.NotFound("product %s not found", p.ID)
	}
	p.StoreID = existing.StoreID
	p.CreatedAt = existing.CreatedAt
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return apperr.NotFound("product %s not found", id)
	}
	delete(s.products, id)
	s.productOrder = remove(s.productOrder, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context, activeOnly bool) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []catalog.Product
	for _, id := range s.productOrder {
		p := s.products[id]
		if activeOnly && !p.IsActive {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *Store) ListProductsByStore(_ context.Context, storeID string) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []catalog.Product
	for _, id := range s.productOrder {
		if s.products[id].StoreID == storeID {
			result = append(result, s.products[id])
		}
	}
	return result, nil
}

// --- ServiceRepository ------------------------------------------------------

func (s *Store) CreateService(_ context.Context, sv catalog.Service) (catalog.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[sv.StoreID]; !ok {
		return catalog.Service{}, apperr.Validation("store %s does not exist", sv.StoreID)
	}
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	if sv.CreatedAt.IsZero() {
		sv.CreatedAt = time.Now().UTC()
	}

	s.services[sv.ID] = sv
	s.serviceOrder = append(s.serviceOrder, sv.ID)
	return sv, nil
}

func (s *Store) GetService(_ context.Context, id string) (catalog.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sv, ok := s.services[id]
	if !ok {
		return catalog.Service{}, apperr.NotFound("service %s not found", id)
	}
	return sv, nil
}

func (s *Store) UpdateService(_ context.Context, sv catalog.Service) (catalog.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.services[sv.ID]
	if !ok {
		return catalog.Service{}, apperr.NotFound("service %s not found", sv.ID)
	}
	sv.StoreID = existing.StoreID
	sv.CreatedAt = existing.CreatedAt
	s.services[sv.ID] = sv
	return sv, nil
}

func (s *Store) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return apperr.NotFound("service %s not found", id)
	}
	delete(s.services, id)
	s.serviceOrder = remove(s.serviceOrder, id)
	return nil
}

func (s *Store) ListServices(_ context.Context, activeOnly bool) ([]catalog.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []catalog.Service
	for _, id := range s.serviceOrder {
		sv := s.services[id]
		if activeOnly && !sv.IsActive {
			continue
		}
		result = append(result, sv)
	}
	return result, nil
}

func (s *Store) ListServicesByStore(_ context.Context, storeID string) ([]catalog.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []catalog.Service
	for _, id := range s.serviceOrder {
		if s.services[id].StoreID == storeID {
			result = append(result, s.services[id])
		}
	}
	return result, nil
}

// --- JobRepository ----------------------------------------------------------

func (s *Store) CreateJob(_ context.Context, j listing.Job) (listing.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[j.StoreID]; !ok {
		return listing.Job{}, apperr.Validation("store %s does not exist", j.StoreID)
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}

	s.jobs[j.ID] = j
	s.jobOrder = append(s.jobOrder, j.ID)
	return j, nil
}

func (s *Store) GetJob(_ context.Context, id string) (listing.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return listing.Job{}, apperr.NotFound("job %s not found", id)
	}
	return j, nil
}

func (s *Store) UpdateJob(_ context.Context, j listing.Job) (listing.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[j.ID]
	if !ok {
		return listing.Job{}, apperr.NotFound("job %s not found", j.ID)
	}
	j.StoreID = existing.StoreID
	j.CreatedAt = existing.CreatedAt
	s.jobs[j.ID] = j
	return j, nil
}

func (s *Store) DeleteJob(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return apperr.NotFound("job %s not found", id)
	}
	delete(s.jobs, id)
	s.jobOrder = remove(s.jobOrder, id)
	return nil
}

func (s *Store) ListJobs(_ context.Context, activeOnly bool) ([]listing.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []listing.Job
	for _, id := range s.jobOrder {
		j := s.jobs[id]
		if activeOnly && !j.IsActive {
			continue
		}
		result = append(result, j)
	}
	return result, nil
}

func (s *Store) ListJobsByStore(_ context.Context, storeID string) ([]listing.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []listing.Job
	for _, id := range s.jobOrder {
		if s.jobs[id].StoreID == storeID {
			result = append(result, s.jobs[id])
		}
	}
	return result, nil
}

// --- AnnouncementRepository -------------------------------------------------

func (s *Store) CreateAnnouncement(_ context.Context, a listing.Announcement) (listing.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[a.StoreID]; !ok {
		return listing.Announcement{}, apperr.Validation("store %s does not exist", a.StoreID)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	s.announcements[a.ID] = a
	s.announcementOrder = append(s.announcementOrder, a.ID)
	return a, nil
}

func (s *Store) GetAnnouncement(_ context.Context, id string) (listing.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.announcements[id]
	if !ok {
		return listing.Announcement{}, apperr.NotFound("announcement %s not found", id)
	}
	return a, nil
}

func (s *Store) UpdateAnnouncement(_ context.Context, a listing.Announcement) (listing.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.announcements[a.ID]
	if !ok {
		return listing.Announcement{}, apperr.NotFound("announcement %s not found", a.ID)
	}
	a.StoreID = existing.StoreID
	a.CreatedAt = existing.CreatedAt
	s.announcements[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAnnouncement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.announcements[id]; !ok {
		return apperr.NotFound("announcement %s not found", id)
	}
	delete(s.announcements, id)
	s.announcementOrder = remove(s.announcementOrder, id)
	return nil
}

func (s *Store) ListAnnouncements(_ context.Context, activeOnly bool) ([]listing.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []listing.Announcement
	for _, id := range s.announcementOrder {
		a := s.announcements[id]
		if activeOnly && !a.IsActive {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (s *Store) ListAnnouncementsByStore(_ context.Context, storeID string) ([]listing.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []listing.Announcement
	for _, id := range s.announcementOrder {
		if s.announcements[id].StoreID == storeID {
			result = append(result, s.announcements[id])
		}
	}
	return result, nil
}

func remove(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
