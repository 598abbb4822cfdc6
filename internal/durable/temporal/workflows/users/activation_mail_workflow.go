package users

import (
	"go.temporal.io/sdk/workflow"

	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/durable/temporal/sequences"
)

const (
	// ActivationMailWorkflowName is the public identifier for registering the workflow.
	ActivationMailWorkflowName = "users.workflows.ActivationMail"
	// ActivationMailTaskQueue is the queue consumed by the worker delivering activation mails.
	ActivationMailTaskQueue = "USER_ACTIVATION_MAIL"
)

// ActivationMailWorkflowInput captures the payload required to mail an activation link.
type ActivationMailWorkflowInput struct {
	Notice  userports.ActivationNotice
	TraceID string
}

// ActivationMailWorkflow delivers the activation link of a newly created user.
func ActivationMailWorkflow(ctx workflow.Context, input ActivationMailWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	userID := input.Notice.UserID
	logger.Info("ActivationMailWorkflow started", withTraceID(input.TraceID, "userId", userID)...)
	if err := sequences.RunActivationMailSequence(ctx, input.Notice); err != nil {
		logger.Error("ActivationMailWorkflow failed", withTraceID(input.TraceID, "userId", userID, "error", err)...)
		return err
	}
	logger.Info("ActivationMailWorkflow completed", withTraceID(input.TraceID, "userId", userID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
