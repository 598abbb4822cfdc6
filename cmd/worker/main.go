package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/shop-users-api/internal/app/api"
	usermail "github.com/Apurer/shop-users-api/internal/domains/users/adapters/mail"
	useractivities "github.com/Apurer/shop-users-api/internal/durable/temporal/activities/users"
	userworkflows "github.com/Apurer/shop-users-api/internal/durable/temporal/workflows/users"
	platformobservability "github.com/Apurer/shop-users-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/shop-users-api/internal/platform/temporal"
)

func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()
	const serviceName = "shop-users-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	mailActivities := useractivities.NewActivities(usermail.NewLogMailer(logger))

	w := worker.New(temporalClient, userworkflows.ActivationMailTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(userworkflows.ActivationMailWorkflow, workflow.RegisterOptions{Name: userworkflows.ActivationMailWorkflowName})
	w.RegisterActivityWithOptions(mailActivities.SendActivationMail, activity.RegisterOptions{Name: useractivities.SendActivationMailActivityName})

	logger.Info("worker listening", slog.String("taskQueue", userworkflows.ActivationMailTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
