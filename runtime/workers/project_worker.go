package workers

import (
	"context"
	"log/slog"

	"cutroom/contract"
	"cutroom/domain"
	"cutroom/domain/event"
)

// Ensure *ProjectWorker implements contract.Worker at compile time.
var _ contract.Worker = (*ProjectWorker)(nil)

// Result is what a caller gets back from a serialized command: the
// post-command snapshot and the events the command produced, or the error.
type Result struct {
	Snapshot domain.Snapshot
	Events   []event.DomainEvent
	Err      error
}

// Envelope carries one command into a project's worker together with the
// caller's reply channel. Reply must be buffered (capacity 1) so the worker
// never blocks on a caller that gave up.
type Envelope struct {
	Cmd   domain.Command
	Reply chan Result
}

// ProjectWorker is the single writer of one project's state. Commands
// arriving on its channel execute strictly in order, which is what makes
// read-max-then-assign sequences (draft and file versions) safe. Events are
// forwarded to the moderation/fanout pipeline after the caller has been
// answered, preserving program order.
type ProjectWorker struct {
	project  *domain.Project
	commands chan Envelope
	events   chan event.DomainEvent
	log      *slog.Logger
}

func NewProjectWorker(project *domain.Project, commands chan Envelope,
	events chan event.DomainEvent, log *slog.Logger) *ProjectWorker {
	return &ProjectWorker{project: project, commands: commands, events: events, log: log}
}

func (w *ProjectWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker", "project", w.project.ID)
			return ctx.Err()
		case env, ok := <-w.commands:
			if !ok {
				return nil
			}
			err := w.project.Apply(env.Cmd)
			evts := w.project.FlushEvents()
			env.Reply <- Result{
				Snapshot: w.project.Snapshot(),
				Events:   evts,
				Err:      err,
			}
			for _, evt := range evts {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case w.events <- evt:
				}
			}
		}
	}
}
