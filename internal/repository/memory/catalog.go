package memory

import (
	"context"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

// NewUserRepository returns the in-memory UserRepository
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.users {
		if r.store.users[i].ID.String() == id {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.users {
		if r.store.users[i].Email == email {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := int64(len(r.store.users))
	offset := (page - 1) * limit
	if offset >= len(r.store.users) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(r.store.users) {
		end = len(r.store.users)
	}
	out := make([]model.User, end-offset)
	copy(out, r.store.users[offset:end])
	return out, total, nil
}

type siteRepository struct {
	store *Store
}

// NewSiteRepository returns the in-memory SiteRepository
func NewSiteRepository(store *Store) repository.SiteRepository {
	return &siteRepository{store: store}
}

func (r *siteRepository) Create(ctx context.Context, site *model.Site) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if site.ID == uuid.Nil {
		site.ID = uuid.New()
	}
	site.CreatedAt = time.Now()
	r.store.sites = append(r.store.sites, *site)
	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (*model.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.sites {
		if r.store.sites[i].ID.String() == id {
			s := r.store.sites[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *siteRepository) List(ctx context.Context) ([]model.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]model.Site, len(r.store.sites))
	copy(out, r.store.sites)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type materialRepository struct {
	store *Store
}

// NewMaterialRepository returns the in-memory MaterialRepository
func NewMaterialRepository(store *Store) repository.MaterialRepository {
	return &materialRepository{store: store}
}

func (r *materialRepository) Create(ctx context.Context, item *model.MaterialCatalogItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.store.materials = append(r.store.materials, *item)
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*model.MaterialCatalogItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.materials {
		if r.store.materials[i].ID.String() == id {
			m := r.store.materials[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *materialRepository) List(ctx context.Context, category string) ([]model.MaterialCatalogItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []model.MaterialCatalogItem
	for i := range r.store.materials {
		if category == "" || r.store.materials[i].Category == category {
			out = append(out, r.store.materials[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
