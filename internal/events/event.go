// Package events provides the in-process pub/sub bus the pipeline uses to
// signal catalog mutations, conflicts and scan completion to collaborators.
package events

import "time"

// Event is implemented by everything published on the bus.
type Event interface {
	EventType() string
	EntityType() string // "movie", "series", "episode", "conflict", "scan"
	EntityID() int64
	OccurredAt() time.Time
}

// Meta carries the fields every event shares. Embedding it satisfies
// Event.
type Meta struct {
	Kind   string    `json:"type"`
	Entity string    `json:"entity_type"`
	Ref    int64     `json:"entity_id"`
	At     time.Time `json:"occurred_at"`
}

func (m Meta) EventType() string     { return m.Kind }
func (m Meta) EntityType() string    { return m.Entity }
func (m Meta) EntityID() int64       { return m.Ref }
func (m Meta) OccurredAt() time.Time { return m.At }

func newMeta(kind, entity string, ref int64) Meta {
	return Meta{Kind: kind, Entity: entity, Ref: ref, At: time.Now()}
}
