package audit

import (
	"context"
	"log/slog"
)

// ChannelSink buffers events in a channel so publishing never blocks the
// request path. When the buffer is full the event is dropped and logged;
// audit is fail-open.
type ChannelSink struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewChannelSink(buffer int, logger *slog.Logger) *ChannelSink {
	return &ChannelSink{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

func (s *ChannelSink) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
	default:
		s.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"document_id", event.DocumentID,
		)
	}
	return nil
}

// Events exposes the buffered stream for a Worker to drain.
func (s *ChannelSink) Events() <-chan Event {
	return s.inbox
}

var _ Sink = (*ChannelSink)(nil)

// Worker drains buffered audit events into a destination sink. It decouples
// request handling from slow sinks like Kafka.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run forwards events until ctx is canceled. Sink failures are logged, not
// fatal; the event is lost but the worker keeps draining.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink append failed",
					"action", event.Action,
					"document_id", event.DocumentID,
					"error", err,
				)
			}
		}
	}
}
