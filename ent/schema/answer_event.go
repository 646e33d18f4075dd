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
		field.String("question_id").
			NotEmpty().
			Comment("Topic slug, level and position in the quiz"),
		field.String("topic").
			NotEmpty(),
		field.String("level").
			NotEmpty().
			Comment("Easy, Medium or Hard"),
		field.String("question_text").
			NotEmpty(),
		field.Int("choice").
			Comment("Option picked by the learner, 1-4"),
		field.Int("correct_choice").
			Comment("Correct option, 1-4"),
		field.Bool("correct"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("topic", "level"),
	}
}
