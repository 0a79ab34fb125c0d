package observability

import (
	"context"

	"github.com/ventry/ventry/internal/adapter/events"
)

type instrumentedPublisher struct {
	next events.Publisher
}

// InstrumentPublisher counts every published purchase event before handing
// it to the underlying publisher.
func InstrumentPublisher(next events.Publisher) events.Publisher {
	return &instrumentedPublisher{next: next}
}

func (p *instrumentedPublisher) Publish(ctx context.Context, event events.Event) {
	CountPurchaseEvent(event.Type)
	p.next.Publish(ctx, event)
}
