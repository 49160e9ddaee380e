package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin gives session and answer events a shared ordering: answers
// sort between the start and end markers of their session by sequence.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Drawn from global_sequence, also the row's primary key"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC, stored as fixed-width text for range queries"),
	}
}

// Indexes covers the history listing, which filters by time range.
func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
