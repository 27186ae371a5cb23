package testutil

import (
	"context"
	"sync"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRecorder is a shared.EventHandler that keeps every event it receives.
type EventRecorder struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
}

// NewEventRecorder subscribes to eventTypes
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{types: eventTypes}
}

func (r *EventRecorder) EventTypes() []string {
	return r.types
}

func (r *EventRecorder) Handle(_ context.Context, event shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events in arrival order
func (r *EventRecorder) Events() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.DomainEvent(nil), r.events...)
}

// CountByType tallies recorded events per event type
func (r *EventRecorder) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, ev := range r.Events() {
		counts[ev.EventType()]++
	}
	return counts
}

// ForAggregate returns the event types recorded for one aggregate, oldest first
func (r *EventRecorder) ForAggregate(id uuid.UUID) []string {
	var types []string
	for _, ev := range r.Events() {
		if ev.AggregateID() == id {
			types = append(types, ev.EventType())
		}
	}
	return types
}
