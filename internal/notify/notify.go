// Package notify reports terminal run status to external endpoints.
// Notification failures never change run status; callers log and move on.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Status of a completed run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Event describes a completed run.
type Event struct {
	RunID    string
	Label    string
	Provider string
	Status   Status
	Stage    string // failing stage, empty on success
	Error    string // terminal error detail, empty on success
	Duration time.Duration
}

// Notifier is the interface for notification backends.
type Notifier interface {
	Name() string
	Send(ctx context.Context, event *Event) error
	IsConfigured() bool
}

// Manager fans an event out to all configured notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates an empty notification manager.
func NewManager() *Manager {
	return &Manager{notifiers: make([]Notifier, 0)}
}

// Add registers a notifier if it is configured.
func (m *Manager) Add(n Notifier) {
	if n.IsConfigured() {
		m.notifiers = append(m.notifiers, n)
	}
}

// HasNotifiers returns true if at least one notifier is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Send delivers the event to every configured notifier.
// Returns an aggregated error if any delivery fails.
func (m *Manager) Send(ctx context.Context, event *Event) error {
	if len(m.notifiers) == 0 {
		return nil
	}

	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify errors: %w", errors.Join(errs...))
	}
	return nil
}
