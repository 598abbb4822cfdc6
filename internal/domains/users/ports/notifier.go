package ports

import "context"

// ActivationNotice is everything needed to tell a pending user how to activate.
type ActivationNotice struct {
	UserID    int64
	Email     string
	FirstName string
	Link      string
}

// ActivationNotifier hands activation notices to a delivery mechanism.
type ActivationNotifier interface {
	NotifyActivation(ctx context.Context, notice ActivationNotice) error
}

// Mailer delivers a rendered activation message.
type Mailer interface {
	SendActivationMail(ctx context.Context, notice ActivationNotice) error
}

// NoopActivationNotifier is a safe default when callers do not need delivery.
var NoopActivationNotifier ActivationNotifier = noopActivationNotifier{}

type noopActivationNotifier struct{}

func (noopActivationNotifier) NotifyActivation(_ context.Context, _ ActivationNotice) error { return nil }
