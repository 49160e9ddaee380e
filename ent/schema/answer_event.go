package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answered question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("word_id").
			NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("spell, recognize or recall"),
		field.String("prompt").
			Optional(),
		field.String("given_answer").
			Optional().
			Comment("Empty when the answer was revealed"),
		field.String("accepted_answer").
			Optional().
			Comment("The form the answer matched, or the canonical form"),
		field.Bool("correct"),
		field.Bool("forgot").
			Default(false),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("word_id"),
	}
}
