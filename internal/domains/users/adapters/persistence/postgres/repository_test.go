package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "smith", escapeLike("smith"))
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}

func TestRepository_NotConfigured(t *testing.T) {
	repo := NewRepository(nil)
	_, err := repo.GetByID(context.Background(), 1)
	assert.Error(t, err)
}
