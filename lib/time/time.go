package time

import (
	"context"
	"time"

	"github.com/docdiag/docdiag/lib/env"
)

// WithTimeout returns context.WithTimeout(ctx, timeout). A timeout <= 0 never expires.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Elapsed formats the time since start for logs. It is constant in test mode so logs are
// stable.
func Elapsed(start time.Time) string {
	if env.Test() {
		return "0s"
	}
	return time.Since(start).Round(time.Millisecond).String()
}
