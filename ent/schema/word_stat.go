package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// WordStat is the current study record of one vocabulary word. Unlike the
// event tables it is updated in place.
type WordStat struct {
	ent.Schema
}

func (WordStat) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "word_stats"},
	}
}

func (WordStat) Fields() []ent.Field {
	return []ent.Field{
		field.String("word_id").
			Unique().
			Immutable(),
		field.Int("times_studied").
			Default(0),
		field.Int("times_wrong").
			Default(0),
		field.Time("last_studied_at").
			Optional().
			Nillable(),
		field.Time("last_wrong_at").
			Optional().
			Nillable(),
		field.Bool("in_error_set").
			Default(false).
			Comment("Owed a correction pass"),
		field.JSON("wrong_by_kind", map[string]int{}).
			Optional().
			Comment("Misses per question kind"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
