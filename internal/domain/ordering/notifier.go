package ordering

import "context"

// NotificationKind identifies a lifecycle event delivered by e-mail
type NotificationKind string

const (
	NotificationUserRegistered NotificationKind = "user_registered"
	NotificationOrderCreated   NotificationKind = "order_created"
	NotificationOrderUpdated   NotificationKind = "order_updated"
	NotificationPasswordReset  NotificationKind = "password_reset"
)

// Notification is one outbound message to a set of recipients
type Notification struct {
	Kind       NotificationKind
	Recipients []string
	Context    map[string]string
}

// Notifier is the outbound notification port. Delivery is fire-and-forget:
// callers log a returned error and never propagate it into the triggering
// operation.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
