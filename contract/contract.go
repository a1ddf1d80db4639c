//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"cutroom/domain"
	"cutroom/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself; supervision handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// avoiding manual naming in the Worker interface. Used for logging and
// supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink consumes domain events after a command has committed. Sinks are
// best-effort: a failing sink never rolls back the mutation.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	GetSinksForProject(projectID domain.ProjectID) []EventSink
	Subscribe(participantID string, projectID domain.ProjectID, sink EventSink)
	Unsubscribe(participantID string, projectID domain.ProjectID)
}

// IOrchestrator is the command surface the UI collaborator drives. Execute
// serializes commands per project and returns the post-command snapshot
// together with the events the command produced.
type IOrchestrator interface {
	RegisterProject(project *domain.Project)
	RegisterSinks(sink ...EventSink)
	Execute(ctx context.Context, cmd domain.Command) (domain.Snapshot, []event.DomainEvent, error)
	RegisterParticipant(token string, projectID domain.ProjectID, sink EventSink) (string, error)
	UnregisterParticipant(pID string, projectID domain.ProjectID)
	Start(ctx context.Context) error
	Stop()
}
