package notification

import (
	"context"

	"github.com/orderhub/backend/internal/domain/ordering"
	"go.uber.org/zap"
)

// LogSink writes notifications to the application log instead of
// delivering them. Used in development and as a fallback when SMTP is
// not configured.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink creates a log-backed notification sink
func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

// Notify logs the notification
func (s *LogSink) Notify(_ context.Context, n ordering.Notification) error {
	s.log.Info("notification",
		zap.String("kind", string(n.Kind)),
		zap.Strings("recipients", n.Recipients),
		zap.Any("context", n.Context),
	)
	return nil
}

// AsyncNotifier wraps another notifier and dispatches in a goroutine so
// request handling never blocks on delivery. Failures are logged, not
// propagated.
type AsyncNotifier struct {
	inner ordering.Notifier
	log   *zap.Logger
}

// NewAsyncNotifier wraps a notifier with asynchronous dispatch
func NewAsyncNotifier(inner ordering.Notifier, log *zap.Logger) *AsyncNotifier {
	return &AsyncNotifier{inner: inner, log: log}
}

// Notify dispatches delivery in the background and returns immediately
func (a *AsyncNotifier) Notify(_ context.Context, n ordering.Notification) error {
	go func() {
		// detached from the request context: delivery outlives the request
		if err := a.inner.Notify(context.Background(), n); err != nil {
			a.log.Warn("notification delivery failed",
				zap.String("kind", string(n.Kind)),
				zap.Strings("recipients", n.Recipients),
				zap.Error(err),
			)
		}
	}()
	return nil
}
