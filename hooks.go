package confmap

import (
	"sync"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/reconciler"
)

// Hook function types for dataset events
type (
	// DeadlineCreatedHook is called for every deadline a sync run adds
	DeadlineCreatedHook func(d conferences.Deadline)

	// ConflictHook is called for every conflict left for manual review
	ConflictHook func(e reconciler.Event)
)

// Hooks registers callbacks for dataset changes.
type Hooks interface {
	// OnDeadlineCreated registers a callback for new deadlines
	OnDeadlineCreated(fn DeadlineCreatedHook)

	// OnConflict registers a callback for merge conflicts
	OnConflict(fn ConflictHook)
}

type hooks struct {
	mu         sync.RWMutex
	onCreated  []DeadlineCreatedHook
	onConflict []ConflictHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnDeadlineCreated registers a callback for new deadlines.
func (c *client) OnDeadlineCreated(fn DeadlineCreatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCreated = append(c.hooks.onCreated, fn)
}

// OnConflict registers a callback for merge conflicts.
func (c *client) OnConflict(fn ConflictHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onConflict = append(c.hooks.onConflict, fn)
}

// trigger replays the events of a run against the registered hooks.
// Created deadlines are looked up in the final dataset.
func (h *hooks) trigger(events []reconciler.Event, final []*conferences.Deadline) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.onCreated) == 0 && len(h.onConflict) == 0 {
		return
	}

	byID := make(map[string]*conferences.Deadline, len(final))
	for _, d := range final {
		byID[d.ID] = d
	}
	for _, e := range events {
		switch {
		case e.Kind == reconciler.EventNew:
			d, ok := byID[e.ID]
			if !ok {
				continue
			}
			for _, fn := range h.onCreated {
				fn(*d.Clone())
			}
		case e.IsConflict():
			for _, fn := range h.onConflict {
				fn(e)
			}
		}
	}
}
