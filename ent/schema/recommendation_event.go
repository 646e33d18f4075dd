package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RecommendationEvent records a video suggested to the learner.
type RecommendationEvent struct {
	ent.Schema
}

func (RecommendationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RecommendationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("answer or final"),
		field.String("topic").
			Default(""),
		field.String("level").
			Default(""),
		field.String("query").
			NotEmpty().
			Comment("Search query the video was found with"),
		field.String("video_id").
			Default(""),
		field.String("video_title").
			Default(""),
		field.String("video_url").
			Default(""),
	}
}

func (RecommendationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
