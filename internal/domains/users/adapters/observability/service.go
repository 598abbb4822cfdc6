package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userapp "github.com/Apurer/shop-users-api/internal/domains/users/application"
	userdomain "github.com/Apurer/shop-users-api/internal/domains/users/domain"
	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

const tracerName = "github.com/Apurer/shop-users-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) AddUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.AddUser")
	defer span.End()
	result, err := s.inner.AddUser(ctx, user)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user")
	}
	span.SetAttributes(attribute.Int64("user.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user created", slog.Int64("user_id", result.ID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByID", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			span.SetAttributes(attribute.Bool("user.found", false))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.Int64("user_id", id))
	}
	return result, nil
}

func (s *Service) ActivateUser(ctx context.Context, id int64, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.ActivateUser", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	if err := s.inner.ActivateUser(ctx, id, token); err != nil {
		if errors.Is(err, userapp.ErrInvalidActivationToken) {
			s.metrics.recordRejected(ctx)
		}
		return s.handleError(ctx, span, err, "failed to activate user", slog.Int64("user_id", id))
	}
	s.metrics.recordActivated(ctx)
	s.logInfo(ctx, "user activated", slog.Int64("user_id", id))
	return nil
}

func (s *Service) GetByLastName(ctx context.Context, fragment string, pageNumber, pageSize int) (*paging.Result[*userdomain.User], error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByLastName", trace.WithAttributes(
		attribute.String("user.last_name_fragment", fragment),
		attribute.Int("page.number", pageNumber),
		attribute.Int("page.size", pageSize),
	))
	defer span.End()
	result, err := s.inner.GetByLastName(ctx, fragment, pageNumber, pageSize)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search users", slog.String("fragment", fragment))
	}
	span.SetAttributes(attribute.Int("page.items", len(result.Items)), attribute.Int("page.total", result.TotalPages))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	usersCreated       metric.Int64Counter
	usersActivated     metric.Int64Counter
	activationRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	activated, _ := m.Int64Counter("users.service.activated", metric.WithDescription("Number of successful activations"))
	rejected, _ := m.Int64Counter("users.service.activation_rejected", metric.WithDescription("Number of activations refused for a wrong token"))
	return serviceMetrics{usersCreated: created, usersActivated: activated, activationRejected: rejected}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordActivated(ctx context.Context) {
	if m.usersActivated != nil {
		m.usersActivated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.activationRejected != nil {
		m.activationRejected.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
