package events

import "time"

// Kind identifies an event type; values are namespaced strings such as
// "call.started" or "agent_output.utterance_cancelled".
type Kind string

// Event is what session observers receive. Concrete events embed [Base] and
// add their payload fields.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and creation time common to every event.
type Base struct {
	kind Kind
	at   time.Time
}

func newBase(kind Kind) Base {
	return Base{kind: kind, at: time.Now()}
}

func (b Base) Kind() Kind { return b.kind }

// Timestamp is the moment the event was created, not when it was observed.
func (b Base) Timestamp() time.Time { return b.at }
