package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz lifecycle events.
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
			Comment("UUID grouping events in a quiz"),
		field.String("action").
			NotEmpty().
			Comment("start, retake or end"),
		field.String("topic").
			Default("").
			Comment("Opening topic on start, last topic on end"),
		field.String("level").
			Default("").
			Comment("Easy, Medium or Hard"),
		field.Int("questions_served").
			Default(0).
			Comment("Questions answered (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Correct answers (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Quiz duration in seconds (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
