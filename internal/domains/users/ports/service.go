package ports

import (
	"context"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ActivateUser(ctx context.Context, id int64, token string) error
	GetByLastName(ctx context.Context, fragment string, pageNumber, pageSize int) (*paging.Result[*domain.User], error)
}
