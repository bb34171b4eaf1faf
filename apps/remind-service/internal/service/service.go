package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/telemetry"
)

// Transactor runs fn inside one unit of work. *database.PostgresDB satisfies it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// publish sends ev after the relational commit; failures are logged only
func publish(ctx context.Context, publisher event.Publisher, ev domain.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, ev); err != nil {
		logger.Get().Warn("failed to publish event",
			zap.String("event_type", string(ev.Type)),
			zap.String("event_id", ev.ID),
			zap.Error(err),
		)
	}
}

// startSpan opens one span per service operation
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, "service."+name)
}

// endSpan records err on span and ends it
func endSpan(span trace.Span, err error) {
	telemetry.RecordError(span, err)
	span.End()
}
