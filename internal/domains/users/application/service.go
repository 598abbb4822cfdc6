package application

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

// TokenGenerator issues opaque activation tokens.
type TokenGenerator func() string

// ActivationLinks renders the link a pending user follows to activate.
type ActivationLinks interface {
	Activation(id int64, token string) string
}

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	notifier ports.ActivationNotifier
	links    ActivationLinks
	tokens   TokenGenerator
	logger   *slog.Logger
}

type Option func(*Service)

// WithActivationNotifier delivers activation links for new users. Links must be configured too.
func WithActivationNotifier(notifier ports.ActivationNotifier, links ActivationLinks) Option {
	return func(s *Service) {
		s.notifier = notifier
		s.links = links
	}
}

func WithTokenGenerator(gen TokenGenerator) Option {
	return func(s *Service) { s.tokens = gen }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: ports.NoopActivationNotifier,
		tokens:   uuid.NewString,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.notifier == nil {
		s.notifier = ports.NoopActivationNotifier
	}
	if s.tokens == nil {
		s.tokens = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// AddUser stores a new pending user with a fresh activation token and sends the activation link.
func (s *Service) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	candidate := *user
	candidate.ID = 0
	if err := candidate.IssueActivationToken(s.tokens()); err != nil {
		return nil, mapError(err)
	}
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, &candidate)
	if err != nil {
		return nil, mapError(err)
	}
	s.sendActivation(ctx, saved)
	return saved, nil
}

// GetByID loads a user that must exist.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// ActivateUser activates a pending user. Repeating it with the right token succeeds without changes.
func (s *Service) ActivateUser(ctx context.Context, id int64, token string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	changed, err := user.Activate(token)
	if err != nil {
		return mapError(err)
	}
	if !changed {
		return nil
	}
	return mapError(s.repo.Activate(ctx, id, token))
}

// GetByLastName pages through users whose last name contains fragment.
func (s *Service) GetByLastName(ctx context.Context, fragment string, pageNumber, pageSize int) (*paging.Result[*domain.User], error) {
	req, err := paging.NewRequest(pageNumber, pageSize)
	if err != nil {
		return nil, mapError(err)
	}
	page, err := s.repo.FindByLastNameContaining(ctx, fragment, req)
	if err != nil {
		return nil, mapError(err)
	}
	return paging.NewResult(page, req), nil
}

func (s *Service) sendActivation(ctx context.Context, user *domain.User) {
	if s.links == nil {
		return
	}
	notice := ports.ActivationNotice{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Link:      s.links.Activation(user.ID, user.ActivationToken),
	}
	if err := s.notifier.NotifyActivation(ctx, notice); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "activation notice not delivered",
			slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
