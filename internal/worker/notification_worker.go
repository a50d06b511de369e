package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-api/internal/events"
)

// Notifier emits stub notifications for domain events. Real delivery is out
// of scope; each event becomes a structured log line.
type Notifier struct {
	logger *zap.Logger
}

// StartNotifier subscribes notification handlers on the dispatcher.
func StartNotifier(dispatcher events.Dispatcher, logger *zap.Logger) *Notifier {
	n := &Notifier{logger: logger}
	if dispatcher == nil {
		return n
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
	dispatcher.Subscribe(events.EventNoteAdded, n.handleNoteAdded)
	return n
}

func (n *Notifier) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated",
		zap.Int64("ticket_id", event.TicketID),
		zap.String("actor", event.Actor.String()),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (n *Notifier) handleTicketUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketUpdated",
		zap.Int64("ticket_id", event.TicketID),
		zap.String("actor", event.Actor.String()),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (n *Notifier) handleNoteAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("NoteAdded",
		zap.Int64("ticket_id", event.TicketID),
		zap.String("actor", event.Actor.String()),
		zap.Any("payload", event.Payload),
	)
	return nil
}
