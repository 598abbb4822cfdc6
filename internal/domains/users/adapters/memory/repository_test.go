package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

func newPendingUser(t *testing.T, last string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ann", last, "ann@example.com")
	require.NoError(t, err)
	require.NoError(t, user.IssueActivationToken("token"))
	return user
}

func TestRepository_SaveAssignsDistinctIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		saved, err := repo.Save(ctx, newPendingUser(t, "Kowalska"))
		require.NoError(t, err)
		require.NotZero(t, saved.ID)
		require.False(t, seen[saved.ID])
		seen[saved.ID] = true
	}
}

func TestRepository_SaveKeepsExplicitID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	user := newPendingUser(t, "Nowak")
	user.ID = 40
	_, err := repo.Save(ctx, user)
	require.NoError(t, err)

	next, err := repo.Save(ctx, newPendingUser(t, "Nowak"))
	require.NoError(t, err)
	assert.Equal(t, int64(41), next.ID)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newPendingUser(t, "Kowalska"))
	require.NoError(t, err)

	saved.LastName = "Changed"
	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kowalska", fetched.LastName)
}

func TestRepository_FindByLastNameContaining(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := repo.Save(ctx, newPendingUser(t, fmt.Sprintf("Goldsmith%d", i)))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, newPendingUser(t, "Jones"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newPendingUser(t, "SMITH"))
	require.NoError(t, err)

	first, err := repo.FindByLastNameContaining(ctx, "smith", paging.Request{Number: 0, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), first.TotalElements)
	require.Len(t, first.Items, 5)
	assert.Equal(t, int64(1), first.Items[0].ID)

	last, err := repo.FindByLastNameContaining(ctx, "smith", paging.Request{Number: 2, Size: 5})
	require.NoError(t, err)
	require.Len(t, last.Items, 2)
	assert.Equal(t, int64(11), last.Items[0].ID)
	assert.Equal(t, int64(12), last.Items[1].ID)
}

func TestRepository_Activate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newPendingUser(t, "Kowalska"))
	require.NoError(t, err)

	require.ErrorIs(t, repo.Activate(ctx, saved.ID, "wrong"), ports.ErrNotFound)
	require.ErrorIs(t, repo.Activate(ctx, saved.ID+1, "token"), ports.ErrNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Activate(ctx, saved.ID, "token"))
		}()
	}
	wg.Wait()

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Active)
}
