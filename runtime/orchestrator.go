package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cutroom/auth"
	"cutroom/contract"
	"cutroom/domain"
	"cutroom/domain/event"
	"cutroom/errors"
	"cutroom/moderation"
	"cutroom/observability"
	"cutroom/runtime/workers"
)

//go:embed blacklist/*
var blacklistFolder embed.FS

// Orchestrator is the authoritative mutation path. Every project gets a
// dedicated worker fed by its own command channel, so commands for one
// project serialize while different projects run fully in parallel. Execute
// is synchronous: the caller gets the post-command snapshot and events,
// then persistence and propagation continue asynchronously through the
// moderation -> fanout pipeline.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	monitoring     *observability.MonitoringManager
	projects       map[domain.ProjectID]chan workers.Envelope
	permanentSinks []contract.EventSink
	rawEvents      chan event.DomainEvent
	domainEvents   chan event.DomainEvent
	telemetry      chan event.DomainEvent
	bufferSize     int
	sinkTimeout    time.Duration
	censorChar     rune
	monitorEvery   time.Duration
	runCtx         context.Context
	started        bool
}

func NewOrchestrator(log *slog.Logger, supervisor *workers.Supervisor,
	registry *Registry, monitoring *observability.MonitoringManager,
	bufferSize int, sinkTimeout, monitorEvery time.Duration, censorChar rune) *Orchestrator {
	return &Orchestrator{
		log:          log,
		supervisor:   supervisor,
		registry:     registry,
		monitoring:   monitoring,
		projects:     make(map[domain.ProjectID]chan workers.Envelope),
		rawEvents:    make(chan event.DomainEvent, bufferSize),
		domainEvents: make(chan event.DomainEvent, bufferSize),
		telemetry:    make(chan event.DomainEvent, bufferSize),
		bufferSize:   bufferSize,
		sinkTimeout:  sinkTimeout,
		monitorEvery: monitorEvery,
		censorChar:   censorChar,
	}
}

// RegisterProject creates the dedicated command channel and worker for a
// project. Registering after Start attaches the worker to the running
// supervisor immediately.
func (o *Orchestrator) RegisterProject(project *domain.Project) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.projects[project.ID]; ok {
		o.log.Info(fmt.Sprintf("Project %s already registered", project.ID))
		return
	}
	commands := make(chan workers.Envelope, o.bufferSize)
	o.projects[project.ID] = commands

	worker := workers.NewProjectWorker(project, commands, o.rawEvents, o.log)
	if o.started {
		o.supervisor.Start(o.runCtx, worker)
		return
	}
	o.supervisor.Add(worker)
}

func (o *Orchestrator) RegisterSinks(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Execute routes one command to its project's worker and waits for the
// result. Commands on the same project observe each other in program
// order; a caller that abandons the wait has no effect on already-applied
// state (the reply channel is buffered).
func (o *Orchestrator) Execute(ctx context.Context, cmd domain.Command) (domain.Snapshot, []event.DomainEvent, error) {
	o.mu.Lock()
	commands, ok := o.projects[cmd.ProjectID()]
	o.mu.Unlock()
	if !ok {
		return domain.Snapshot{}, nil, fmt.Errorf("project %s: %w", cmd.ProjectID(), errors.ErrNotFound)
	}

	env := workers.Envelope{Cmd: cmd, Reply: make(chan workers.Result, 1)}
	select {
	case <-ctx.Done():
		return domain.Snapshot{}, nil, ctx.Err()
	case commands <- env:
	}

	select {
	case <-ctx.Done():
		return domain.Snapshot{}, nil, ctx.Err()
	case res := <-env.Reply:
		if res.Err != nil {
			o.monitoring.IncrCommandsFailed()
			return domain.Snapshot{}, nil, res.Err
		}
		o.monitoring.IncrCommandsExecuted()
		return res.Snapshot, res.Events, nil
	}
}

// RegisterParticipant authenticates a participant token and connects their
// sink to a project feed. The participant id carried by the token becomes
// the subscription key; callers hand it back to UnregisterParticipant.
func (o *Orchestrator) RegisterParticipant(token string, projectID domain.ProjectID, sink contract.EventSink) (string, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("participant token rejected: %v: %w", err, errors.ErrForbidden)
	}
	o.registry.Subscribe(claims.ParticipantID, projectID, sink)
	return claims.ParticipantID, nil
}

// UnregisterParticipant disconnects a participant.
func (o *Orchestrator) UnregisterParticipant(pID string, projectID domain.ProjectID) {
	o.registry.Unsubscribe(pID, projectID)
}

// Start prepares the pipeline workers (moderation, fanout, health monitor)
// and launches the supervisor. Heavy preparation (loading wordlists and
// building the Aho-Corasick automaton) happens before the short critical
// section that mutates orchestrator state.
func (o *Orchestrator) Start(ctx context.Context) error {
	moderationWorker, err := o.prepareModeration("blacklist", o.censorChar)
	if err != nil {
		return err
	}

	fanout := workers.NewEventFanout(o.log, o.snapshotSinks(), o.registry,
		o.domainEvents, o.telemetry, o.sinkTimeout)
	monitor := workers.NewHealthMonitorWorker(o.log, o.telemetry, o.monitoring, o.monitorEvery)

	o.mu.Lock()
	o.supervisor.Add(moderationWorker, fanout, monitor)
	o.runCtx = ctx
	o.started = true
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)
	return nil
}

// prepareModeration loads the embedded wordlists and builds the censor
// stage between raw and domain events.
func (o *Orchestrator) prepareModeration(path string, censorChar rune) (contract.Worker, error) {
	loader := NewBlacklistLoader(blacklistFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	o.log.Info(fmt.Sprintf("%d blacklist files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	o.log.Info(fmt.Sprintf("%d unique blacklisted words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, censorChar)
	if err != nil {
		return nil, err
	}
	return workers.NewModerationWorker(moderator, o.rawEvents, o.domainEvents, o.log), nil
}

func (o *Orchestrator) snapshotSinks() []contract.EventSink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]contract.EventSink{}, o.permanentSinks...)
}

// Stop initiates a graceful shutdown: the supervision context is canceled
// and workers drain on their own.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
