// Package notify reports finished jobs to the user.
package notify

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Event describes the outcome of one job. Err is nil on success.
type Event struct {
	JobID      string
	Operation  string
	InputPath  string
	OutputPath string
	Elapsed    time.Duration
	Err        error
}

// Succeeded reports whether the job finished without error.
func (e Event) Succeeded() bool {
	return e.Err == nil
}

// Notifier receives job outcomes.
type Notifier interface {
	Notify(Event)
}

// Console prints a one-line message per job, the terminal's stand-in for a
// desktop toast.
type Console struct {
	W io.Writer
}

func (c Console) Notify(e Event) {
	if e.Succeeded() {
		fmt.Fprintf(c.W, "Saved %s (%s)\n", filepath.Base(e.OutputPath), e.Elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(c.W, "Failed to %s %s: %v\n", e.Operation, filepath.Base(e.InputPath), e.Err)
}

// Log writes structured entries.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(e Event) {
	fields := []zap.Field{
		zap.String("job", e.JobID),
		zap.String("operation", e.Operation),
		zap.String("input", e.InputPath),
		zap.String("output", e.OutputPath),
		zap.Duration("elapsed", e.Elapsed),
	}
	if e.Succeeded() {
		l.Logger.Info("job finished", fields...)
		return
	}
	l.Logger.Error("job failed", append(fields, zap.Error(e.Err))...)
}

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(e Event) {
	for _, n := range m {
		n.Notify(e)
	}
}
