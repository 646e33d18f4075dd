package session

import (
	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/topics"
)

// Focus is the topic and level for the next question.
type Focus struct {
	Topic topics.Topic
	Level topics.Level

	// FromModel is true when the focus model picked the topic.
	FromModel bool
}

// Planner picks what to ask next. The focus model trained on the whole
// answer log chooses the topic (and the opening level); within a session
// the difficulty adapter moves the level.
type Planner struct {
	Catalog []topics.Topic

	// Fixed, when set, is the only topic asked.
	Fixed *topics.Topic

	StartLevel topics.Level
	Adapt      adapt.Config
}

// NewPlanner creates a Planner over catalog. fixed may be nil.
func NewPlanner(catalog []topics.Topic, fixed *topics.Topic, cfg Config) *Planner {
	if cfg.Adapt == (adapt.Config{}) {
		cfg.Adapt = adapt.DefaultConfig()
	}
	return &Planner{
		Catalog:    catalog,
		Fixed:      fixed,
		StartLevel: cfg.StartLevel,
		Adapt:      cfg.Adapt,
	}
}

// Start picks the opening focus from the answer log.
func (p *Planner) Start(obs []adapt.Observation) Focus {
	names := p.topicNames()
	name, level, ok := adapt.SelectFocus(obs, names, topics.Levels())
	if !ok {
		return Focus{Topic: p.topic(names[0]), Level: p.clampStart(p.StartLevel)}
	}
	return Focus{Topic: p.topic(name), Level: p.clampStart(level), FromModel: true}
}

// Next picks the focus for the question after the last answered one.
func (p *Planner) Next(state *SessionState, obs []adapt.Observation) Focus {
	level := adapt.Next(Outcomes(state), state.Level, p.Adapt)

	names := p.topicNames()
	name, _, ok := adapt.SelectFocus(obs, names, topics.Levels())
	if !ok {
		name = state.Topic.Name
		if name == "" {
			name = names[0]
		}
	}
	return Focus{Topic: p.topic(name), Level: level, FromModel: ok}
}

func (p *Planner) topicNames() []string {
	if p.Fixed != nil {
		return []string{p.Fixed.Name}
	}
	if len(p.Catalog) == 0 {
		p.Catalog = topics.DefaultTopics()
	}
	return topics.Names(p.Catalog)
}

func (p *Planner) topic(name string) topics.Topic {
	if p.Fixed != nil {
		return *p.Fixed
	}
	return topics.Resolve(p.Catalog, name)
}

func (p *Planner) clampStart(l topics.Level) topics.Level {
	lo, hi := p.Adapt.Min, p.Adapt.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	if l < lo {
		return lo
	}
	if l > hi {
		return hi
	}
	return l
}

// Observations converts persisted answers for the focus model.
// Answers with an unknown level are skipped.
func Observations(recs []store.AnswerEventRecord) []adapt.Observation {
	out := make([]adapt.Observation, 0, len(recs))
	for _, r := range recs {
		level, err := topics.ParseLevel(r.Level)
		if err != nil {
			continue
		}
		out = append(out, adapt.Observation{Topic: r.Topic, Level: level, Correct: r.Correct})
	}
	return out
}

// AnswerEvent builds the persisted form of the latest history record.
func AnswerEvent(state *SessionState) (store.AnswerEventData, bool) {
	if len(state.History) == 0 {
		return store.AnswerEventData{}, false
	}
	r := state.History[len(state.History)-1]
	d := store.AnswerEventData{
		SessionID:     state.SessionID,
		QuestionID:    r.QuestionID,
		Topic:         r.Topic,
		Level:         r.Level.String(),
		QuestionText:  r.Question,
		Choice:        r.Chosen,
		CorrectChoice: r.CorrectChoice,
		Correct:       r.Correct,
		TimeMs:        r.TimeMs,
	}
	return d, true
}
