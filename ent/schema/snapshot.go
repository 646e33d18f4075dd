package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot stores per-topic progress so the home screen does not replay
// the whole answer log.
type Snapshot struct {
	ent.Schema
}

// TopicProgress is one entry of the snapshot data.
type TopicProgress struct {
	Topic    string `json:"topic"`
	Level    string `json:"level"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Event sequence number at the time of snapshot"),
		field.Time("timestamp").
			Default(time.Now),
		field.JSON("data", []TopicProgress{}).
			Comment("Progress per topic and level"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
