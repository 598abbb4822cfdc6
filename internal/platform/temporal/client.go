package temporal

import (
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/shop-users-api/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off in configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// ClientConfig locates the Temporal frontend.
type ClientConfig struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Options builds client options with the tracing interceptor and structured logger attached.
func Options(cfg ClientConfig, instruments *platformobservability.Instruments, tracerName string) (client.Options, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return client.Options{}, err
	}
	address := cfg.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}

// Dial connects to Temporal unless it is disabled.
func Dial(cfg ClientConfig, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}
	options, err := Options(cfg, instruments, tracerName)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
