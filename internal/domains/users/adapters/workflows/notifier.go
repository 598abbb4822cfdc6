package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	userworkflows "github.com/Apurer/shop-users-api/internal/durable/temporal/workflows/users"
)

var (
	_ ports.ActivationNotifier = (*TemporalActivationNotifier)(nil)
	_ ports.ActivationNotifier = (*InlineActivationNotifier)(nil)
)

// WorkflowStarter is the subset of the Temporal client used to start workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalActivationNotifier starts the activation mail workflow on a Temporal cluster.
type TemporalActivationNotifier struct {
	client    WorkflowStarter
	taskQueue string
}

// NewTemporalActivationNotifier wires a Temporal client into the notifier.
func NewTemporalActivationNotifier(c WorkflowStarter) *TemporalActivationNotifier {
	return &TemporalActivationNotifier{client: c, taskQueue: userworkflows.ActivationMailTaskQueue}
}

// NotifyActivation starts delivery and returns without waiting for the mail to go out.
// The workflow is started by its registered name since this process never registers it.
// A workflow already running for the same user counts as delivered.
func (n *TemporalActivationNotifier) NotifyActivation(ctx context.Context, notice ports.ActivationNotice) error {
	if n == nil || n.client == nil {
		return errors.New("temporal activation notifier not configured")
	}
	options := client.StartWorkflowOptions{
		ID:                                       ActivationMailWorkflowID(notice.UserID),
		TaskQueue:                                n.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	_, err := n.client.ExecuteWorkflow(
		ctx,
		options,
		userworkflows.ActivationMailWorkflowName,
		userworkflows.ActivationMailWorkflowInput{Notice: notice, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineActivationNotifier mails directly without durable orchestration, useful for tests or dev fallbacks.
type InlineActivationNotifier struct {
	mailer ports.Mailer
}

// NewInlineActivationNotifier wraps a mailer for synchronous delivery.
func NewInlineActivationNotifier(mailer ports.Mailer) *InlineActivationNotifier {
	return &InlineActivationNotifier{mailer: mailer}
}

func (n *InlineActivationNotifier) NotifyActivation(ctx context.Context, notice ports.ActivationNotice) error {
	if n == nil || n.mailer == nil {
		return errors.New("inline activation notifier not configured")
	}
	return n.mailer.SendActivationMail(ctx, notice)
}

// ActivationMailWorkflowID is deterministic per user so a retried creation cannot mail twice concurrently.
func ActivationMailWorkflowID(userID int64) string {
	return fmt.Sprintf("user-activation-mail-%d", userID)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
