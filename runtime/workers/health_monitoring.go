package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"cutroom/contract"
	"cutroom/domain/event"
	"cutroom/observability"
)

var _ contract.Worker = (*HealthMonitorWorker)(nil)

// HealthMonitorWorker consumes the telemetry copy of the event stream to
// keep per-event counters, and periodically samples the process's own CPU
// and memory for the debug endpoint.
type HealthMonitorWorker struct {
	log        *slog.Logger
	telemetry  chan event.DomainEvent
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewHealthMonitorWorker(log *slog.Logger, telemetry chan event.DomainEvent,
	monitoring *observability.MonitoringManager, interval time.Duration) *HealthMonitorWorker {
	return &HealthMonitorWorker{log: log, telemetry: telemetry, monitoring: monitoring, interval: interval}
}

func (w *HealthMonitorWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-w.telemetry:
			if !ok {
				return nil
			}
			w.monitoring.RecordEvent(evt.Name())
		case <-ticker.C:
			rss, cpu, err := selfStats(proc)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.monitoring.SetProcessStats(rss, cpu)
		}
	}
}

func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
