package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrUserNotFound is returned by lookups that must find a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidActivationToken rejects an activation attempt with the wrong token.
	ErrInvalidActivationToken = errors.New("invalid activation token")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyFirstName) ||
		errors.Is(err, domain.ErrEmptyLastName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyActivationToken) ||
		errors.Is(err, paging.ErrNegativePageNumber) ||
		errors.Is(err, paging.ErrInvalidPageSize) ||
		errors.Is(err, paging.ErrPageOutOfRange) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return ErrUserNotFound
	}
	if errors.Is(err, domain.ErrInvalidActivationToken) {
		return ErrInvalidActivationToken
	}
	return err
}
