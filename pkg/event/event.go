// Package event wraps payloads into envelopes, so they may be published
// without the publisher knowing about their concrete type.
package event

import (
	"time"

	"github.com/segmentio/ksuid"
)

// Holder is the capability of carrying an opaque payload
type Holder interface {
	Kind() string
	Value() any
}

var _ Holder = Envelope[struct{}]{}

// Envelope holds a single payload, with an identity and a time.
//
// IDs are K-sortable: envelopes created later sort after earlier ones.
type Envelope[T any] struct {
	ID      string    `json:"id" yaml:"id"`
	Type    string    `json:"kind" yaml:"kind"`
	Time    time.Time `json:"time" yaml:"time"`
	Payload T         `json:"payload" yaml:"payload"`
}

// New envelope for a payload of some kind
func New[T any](kind string, payload T) Envelope[T] {
	now := time.Now().UTC()
	id, err := ksuid.NewRandomWithTime(now)
	if err != nil {
		// the random source is exhausted: fall back on the default generator, which panics on failure
		id = ksuid.New()
	}
	return Envelope[T]{
		ID:      id.String(),
		Type:    kind,
		Time:    now,
		Payload: payload,
	}
}

// Kind of payload
func (e Envelope[T]) Kind() string { return e.Type }

// Value returns the payload
func (e Envelope[T]) Value() any { return e.Payload }

// Handler consumes envelopes
type Handler[T any] func(Envelope[T])
