package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cutroom/errors"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID        uuid.UUID
	ProjectID ProjectID
	Name      string
	Status    Status
	Hours     float64
	Cost      float64
	// DueDate is carried as the opaque date string the dashboards exchange.
	DueDate         string
	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// Board owns the task cards of one project. The status machine is
// deliberately unconstrained: the dashboards allow free drag between
// columns, so any status may move to any other. Moves are audited through
// TaskMoved events rather than restricted at runtime.
type Board struct {
	project ProjectID
	tasks   []*Task
	byID    map[uuid.UUID]*Task
}

func NewBoard(project ProjectID) *Board {
	return &Board{
		project: project,
		byID:    make(map[uuid.UUID]*Task),
	}
}

func (b *Board) Create(name string, hours, cost float64, dueDate string, at time.Time) Task {
	task := &Task{
		ID:              uuid.New(),
		ProjectID:       b.project,
		Name:            name,
		Status:          StatusPending,
		Hours:           hours,
		Cost:            cost,
		DueDate:         dueDate,
		CreatedAt:       at,
		StatusChangedAt: at,
	}
	b.tasks = append(b.tasks, task)
	b.byID[task.ID] = task
	return *task
}

// Move reassigns a task to a column. The previous status is returned for
// the audit event. An unknown status leaves the task unchanged.
func (b *Board) Move(id uuid.UUID, newStatus Status, at time.Time) (Task, Status, error) {
	task, ok := b.byID[id]
	if !ok {
		return Task{}, "", fmt.Errorf("task %s: %w", id, errors.ErrNotFound)
	}
	if !newStatus.Valid() {
		return Task{}, "", fmt.Errorf("task status %q: %w", newStatus, errors.ErrInvalidStatus)
	}
	from := task.Status
	task.Status = newStatus
	task.StatusChangedAt = at
	return *task, from, nil
}

// TasksByStatus returns the column content in stable creation order.
func (b *Board) TasksByStatus(status Status) ([]Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("task status %q: %w", status, errors.ErrInvalidStatus)
	}
	var out []Task
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (b *Board) Tasks() []Task {
	out := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		out = append(out, *t)
	}
	return out
}
