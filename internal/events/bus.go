// Package events carries submission outcomes to interested observers without
// coupling the dispatch pipeline to them. Subscribers hold an explicit
// unsubscribe handle; there is no module-level listener registry to leak
// across tests or grow without bound.
package events

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// Outcome is the terminal state of one submission.
type Outcome string

const (
	OutcomeAccepted           Outcome = "accepted"
	OutcomePartiallyAccepted  Outcome = "partially_accepted" // operator notified, acknowledgment failed
	OutcomeValidationFailed   Outcome = "validation_failed"
	OutcomeConfigurationError Outcome = "configuration_error"
	OutcomeDispatchFailed     Outcome = "dispatch_failed"
)

// Submission is the event published once per inbound request, at its
// terminal state.
type Submission struct {
	ID      uuid.UUID
	Kind    model.SchemaKind
	Outcome Outcome
	Email   string
	EventID string
}

// Bus is a small synchronous subject. Publish calls every subscriber on the
// publishing goroutine; subscribers must not block.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Submission)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Submission))}
}

// Subscribe registers fn and returns its unsubscribe handle. Calling the
// handle more than once is harmless.
func (b *Bus) Subscribe(fn func(Submission)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every current subscriber.
func (b *Bus) Publish(ev Submission) {
	b.mu.RLock()
	subs := make([]func(Submission), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
