package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
	useractivities "github.com/Apurer/shop-users-api/internal/durable/temporal/activities/users"
)

// ActivationMailActivityOptions bounds a single delivery attempt and its retries.
var ActivationMailActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    2 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    10,
	},
}

// RunActivationMailSequence executes the activities that deliver an activation link.
func RunActivationMailSequence(ctx workflow.Context, notice userports.ActivationNotice) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("activation mail sequence started", "userId", notice.UserID)
	ctx = workflow.WithActivityOptions(ctx, ActivationMailActivityOptions)

	if err := workflow.ExecuteActivity(ctx, useractivities.SendActivationMailActivityName, notice).Get(ctx, nil); err != nil {
		logger.Error("activation mail sequence failed", "userId", notice.UserID, "error", err)
		return err
	}
	logger.Info("activation mail sequence completed", "userId", notice.UserID)
	return nil
}
