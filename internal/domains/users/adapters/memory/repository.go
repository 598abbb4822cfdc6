package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	lastID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	if clone.ID == 0 {
		r.lastID++
		clone.ID = r.lastID
	} else if clone.ID > r.lastID {
		r.lastID = clone.ID
	}
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) FindByLastNameContaining(_ context.Context, fragment string, page paging.Request) (paging.Page[*domain.User], error) {
	r.mu.RLock()
	matches := make([]*domain.User, 0)
	for _, user := range r.users {
		if strings.Contains(user.LastName, fragment) {
			clone := *user
			matches = append(matches, &clone)
		}
	}
	r.mu.RUnlock()
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return paging.Page[*domain.User]{
		Items:         paging.Slice(matches, page),
		TotalElements: int64(len(matches)),
	}, nil
}

func (r *Repository) Activate(_ context.Context, id int64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || !user.MatchesToken(token) {
		return ports.ErrNotFound
	}
	user.Active = true
	return nil
}

// Reset drops every stored user and restarts identifiers.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = map[int64]*domain.User{}
	r.lastID = 0
}
