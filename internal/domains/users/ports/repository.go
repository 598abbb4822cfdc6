package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

// ErrNotFound is how stores report a missing user. It is an expected outcome, not a failure.
var ErrNotFound = errors.New("user not found")

// Repository is the user store.
type Repository interface {
	// Save inserts a user when its ID is zero, assigning a fresh identifier, and updates it otherwise.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByLastNameContaining matches last names by case-sensitive substring, ordered by id.
	FindByLastNameContaining(ctx context.Context, fragment string, page paging.Request) (paging.Page[*domain.User], error)
	// Activate sets the active flag in one conditional update keyed by id and token.
	Activate(ctx context.Context, id int64, token string) error
}
