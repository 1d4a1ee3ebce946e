package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Submission
	unsubscribe := bus.Subscribe(func(ev Submission) {
		got = append(got, ev)
	})
	defer unsubscribe()

	ev := Submission{ID: uuid.New(), Kind: model.SchemaQuote, Outcome: OutcomeAccepted}
	bus.Publish(ev)

	assert.Equal(t, []Submission{ev}, got)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	count := 0
	unsubscribe := bus.Subscribe(func(Submission) { count++ })

	bus.Publish(Submission{Outcome: OutcomeAccepted})
	unsubscribe()
	bus.Publish(Submission{Outcome: OutcomeDispatchFailed})

	assert.Equal(t, 1, count)

	// A second unsubscribe is harmless.
	unsubscribe()
}

func TestBusSupportsMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	a, b := 0, 0
	unsubA := bus.Subscribe(func(Submission) { a++ })
	defer unsubA()
	unsubB := bus.Subscribe(func(Submission) { b++ })

	bus.Publish(Submission{Outcome: OutcomeAccepted})
	unsubB()
	bus.Publish(Submission{Outcome: OutcomeAccepted})

	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)
}
