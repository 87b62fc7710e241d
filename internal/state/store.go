// Package state persists transpile run history in SQLite.
package state

import "time"

// RunStatus is the terminal status of a transpile run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one transpile invocation.
type Run struct {
	ID        string
	Source    string // file path, or "-" for stdin/REPL input
	Status    RunStatus
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// Store persists transpile runs.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error
	RecordRun(run *Run) error
	ListRuns(limit int) ([]*Run, error)
}
