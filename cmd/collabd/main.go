package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"cutroom/auth"
	"cutroom/domain"
	"cutroom/internal"
	"cutroom/observability"
	"cutroom/repositories"
	"cutroom/runtime"
	"cutroom/runtime/workers"
	"cutroom/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the daemon lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	censorChar, err := internal.CharacterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}

	// 2. Databases (BadgerDB journal + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	// Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge index...")
		_ = blugeWriter.Close()
	}()

	// 3. Setup Supervision & Orchestration
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	monitoring := observability.NewMonitoringManager()
	journal := repositories.NewJournalRepository(db, log, config.PageLimit)
	index := repositories.NewMessageIndex(blugeWriter, log)
	accounts := auth.NewService(config.AuthTokenDuration)

	orchestrator := runtime.NewOrchestrator(
		log, sup, registry, monitoring,
		config.BufferSize, config.SinkTimeout, config.MonitorInterval, censorChar,
	)
	orchestrator.RegisterSinks(
		sink.NewJournalSink(journal, log),
		sink.NewSearchSink(index, log),
	)

	for _, id := range strings.Split(config.Projects, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		orchestrator.RegisterProject(domain.NewProject(domain.ProjectID(id)))
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start the Engine
	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}
	log.Info("Collaboration engine started", "projects", config.Projects, "at", time.Now().UTC())

	// 6. Local inspection endpoint: journal dump, stats, account
	// registration (tokens for RegisterParticipant) and message search.
	if config.EnableDebugServer {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.DebugServerOptions{
			Stats: func() map[string]any {
				stats := monitoring.GetLatest()
				return map[string]any{
					"CommandsExecuted": stats.CommandsExecuted,
					"CommandsFailed":   stats.CommandsFailed,
					"EventsByName":     stats.EventsByName,
					"RSSBytes":         stats.RSSBytes,
					"CPUPercent":       stats.CPUPercent,
				}
			},
			Accounts: accounts,
			Search: func(ctx context.Context, projectID, terms string) (any, error) {
				return index.Search(ctx, projectID, terms, config.SearchLimit)
			},
		})
		log.Info("Debug server listening", "port", config.DebugPort)
	}

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 8. Final Cleanup
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
