package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent marks the start or end of a practice session.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.Enum("action").
			Values("start", "end"),
		field.String("mode").
			NotEmpty().
			Comment("Question kind, mixed, room, review or retry"),
		field.String("room").
			Optional().
			Nillable().
			Comment("Room code for shared sessions"),
		field.Int("questions_served").
			Default(0).
			Comment("Questions answered (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Correct answers (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Wall-clock duration (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
