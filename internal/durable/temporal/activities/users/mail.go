package users

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
)

// SendActivationMailActivityName delivers the activation link to a pending user.
const SendActivationMailActivityName = "users.activities.SendActivationMail"

// Activities groups activities that operate on the users bounded context.
type Activities struct {
	mailer userports.Mailer
}

// NewActivities wires the mailer into the Temporal activities bundle.
func NewActivities(mailer userports.Mailer) *Activities {
	return &Activities{mailer: mailer}
}

// SendActivationMail hands the notice to the mailer. Errors are retried by the workflow's policy.
func (a *Activities) SendActivationMail(ctx context.Context, notice userports.ActivationNotice) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.mailer == nil {
		logger.Error("activation mail activity not initialized", "userId", notice.UserID)
		return errors.New("activation mail activity not initialized")
	}
	logger.Info("SendActivationMail activity started", "userId", notice.UserID)
	if err := a.mailer.SendActivationMail(ctx, notice); err != nil {
		logger.Error("SendActivationMail activity failed", "userId", notice.UserID, "error", err)
		return err
	}
	logger.Info("SendActivationMail activity completed", "userId", notice.UserID)
	return nil
}
