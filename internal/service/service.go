package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("campus-service/service")

// MailSender delivers a plain-text message.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventPublisher emits domain events. Failures never fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
