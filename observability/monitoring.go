// Package observability aggregates runtime telemetry for the debug
// endpoint: command counters, per-event-kind counts, and process self
// stats. It observes and never influences the command path.
package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats is the read view served by the debug server.
type MonitoringStats struct {
	CommandsExecuted uint64            `json:"commands_executed"`
	CommandsFailed   uint64            `json:"commands_failed"`
	EventsByName     map[string]uint64 `json:"events_by_name"`
	RSSBytes         uint64            `json:"rss_bytes"`
	CPUPercent       float64           `json:"cpu_percent"`
	StartedAt        time.Time         `json:"started_at"`
	SampledAt        time.Time         `json:"sampled_at"`
}

type MonitoringManager struct {
	mu               sync.RWMutex
	commandsExecuted atomic.Uint64
	commandsFailed   atomic.Uint64
	eventsByName     map[string]uint64
	rssBytes         uint64
	cpuPercent       float64
	sampledAt        time.Time
	startedAt        time.Time
}

func NewMonitoringManager() *MonitoringManager {
	return &MonitoringManager{
		eventsByName: make(map[string]uint64),
		startedAt:    time.Now().UTC(),
	}
}

func (mm *MonitoringManager) IncrCommandsExecuted() { mm.commandsExecuted.Add(1) }

func (mm *MonitoringManager) IncrCommandsFailed() { mm.commandsFailed.Add(1) }

func (mm *MonitoringManager) RecordEvent(name string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.eventsByName[name]++
}

func (mm *MonitoringManager) SetProcessStats(rssBytes uint64, cpuPercent float64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.rssBytes = rssBytes
	mm.cpuPercent = cpuPercent
	mm.sampledAt = time.Now().UTC()
}

// GetLatest returns an independent copy of the current stats.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	events := make(map[string]uint64, len(mm.eventsByName))
	for k, v := range mm.eventsByName {
		events[k] = v
	}
	return MonitoringStats{
		CommandsExecuted: mm.commandsExecuted.Load(),
		CommandsFailed:   mm.commandsFailed.Load(),
		EventsByName:     events,
		RSSBytes:         mm.rssBytes,
		CPUPercent:       mm.cpuPercent,
		StartedAt:        mm.startedAt,
		SampledAt:        mm.sampledAt,
	}
}
