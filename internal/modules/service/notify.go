package service

import (
	"context"
	"time"

	"github.com/dappwork/marketplace/internal/telemetry"
	"go.uber.org/zap"
)

// notifier publishes events after the write they describe has committed.
// A broker failure is logged and counted, never returned.
type notifier struct {
	pub EventPublisher
	log *zap.Logger
}

func newNotifier(pub EventPublisher, log *zap.Logger) notifier {
	if pub == nil {
		pub = NoopPublisher()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return notifier{pub: pub, log: log}
}

func (n notifier) emit(ctx context.Context, ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	err := n.pub.Publish(ctx, ev)
	telemetry.RecordEventPublished(ev.Kind, err)
	if err != nil {
		n.log.Warn("publish event failed",
			zap.String("kind", ev.Kind),
			zap.String("entity_id", ev.EntityID.String()),
			zap.Error(err))
	}
}
