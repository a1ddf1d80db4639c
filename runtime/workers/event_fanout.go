package workers

import (
	"context"
	"log/slog"
	"time"

	"cutroom/contract"
	"cutroom/domain"
	"cutroom/domain/event"
)

var _ contract.Worker = (*EventFanout)(nil)

// EventFanout broadcasts domain events to in-process consumers: the
// permanent sinks (journal, search index, timeline) and whichever
// participants currently follow the event's project.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries: it is not a message broker. Events for one
// project arrive in program order because the pipeline upstream is a single
// channel chain.
type EventFanout struct {
	log         *slog.Logger
	sinks       []contract.EventSink
	registry    contract.IRegistry
	events      chan event.DomainEvent
	telemetry   chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, sinks []contract.EventSink,
	registry contract.IRegistry, events, telemetry chan event.DomainEvent,
	sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		sinks:       sinks,
		registry:    registry,
		events:      events,
		telemetry:   telemetry,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		case evt := <-w.events:
			w.fanout(ctx, evt)
			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event lost")
			}
		}
	}
}

// fanout delivers one event to every permanent sink plus the project's
// followers, bounding each delivery with the sink timeout so one slow
// consumer cannot stall the pipeline.
func (w *EventFanout) fanout(ctx context.Context, evt event.DomainEvent) {
	targets := append([]contract.EventSink{}, w.sinks...)
	if w.registry != nil {
		targets = append(targets, w.registry.GetSinksForProject(domain.ProjectID(evt.Project()))...)
	}
	for _, sink := range targets {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink rejected event", "event", evt.Name(), "error", err)
		}
		cancel()
	}
}
