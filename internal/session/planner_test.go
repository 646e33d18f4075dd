package session

import (
	"testing"

	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/topics"
)

func weakWWIIHard() []adapt.Observation {
	var obs []adapt.Observation
	for i := 0; i < 3; i++ {
		obs = append(obs,
			adapt.Observation{Topic: "World War I", Level: topics.Easy, Correct: true},
			adapt.Observation{Topic: "World War II", Level: topics.Hard, Correct: false},
		)
	}
	obs = append(obs,
		adapt.Observation{Topic: "World War II", Level: topics.Easy, Correct: true},
		adapt.Observation{Topic: "World War I", Level: topics.Hard, Correct: false},
	)
	return obs
}

func TestPlannerStart_NoHistory(t *testing.T) {
	p := NewPlanner(topics.DefaultTopics(), nil, DefaultConfig())
	f := p.Start(nil)
	if f.Topic.Name != "World War I" || f.Level != topics.Easy || f.FromModel {
		t.Errorf("focus = %+v", f)
	}
}

func TestPlannerStart_UsesModel(t *testing.T) {
	p := NewPlanner(topics.DefaultTopics(), nil, DefaultConfig())
	f := p.Start(weakWWIIHard())
	if !f.FromModel {
		t.Fatal("expected model focus")
	}
	if f.Topic.ID != "world-war-ii" || f.Level != topics.Hard {
		t.Errorf("focus = %s/%v", f.Topic.ID, f.Level)
	}
	if len(f.Topic.Focus) == 0 {
		t.Error("expected catalog topic with focus list")
	}
}

func TestPlannerStart_ClampsToBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Adapt.Max = topics.Medium
	p := NewPlanner(topics.DefaultTopics(), nil, cfg)
	if f := p.Start(weakWWIIHard()); f.Level != topics.Medium {
		t.Errorf("Level = %v, want Medium", f.Level)
	}
}

func TestPlannerFixedTopic(t *testing.T) {
	fixed := topics.Custom("Ancient Rome")
	p := NewPlanner(topics.DefaultTopics(), &fixed, DefaultConfig())

	f := p.Start(weakWWIIHard())
	if f.Topic.Name != "Ancient Rome" {
		t.Errorf("Topic = %q", f.Topic.Name)
	}

	s := NewSessionState("s", DefaultConfig())
	SetFocus(s, f.Topic, f.Level)
	if next := p.Next(s, weakWWIIHard()); next.Topic.Name != "Ancient Rome" {
		t.Errorf("Next topic = %q", next.Topic.Name)
	}
}

func TestPlannerNext_LevelFromStreak(t *testing.T) {
	p := NewPlanner(topics.DefaultTopics(), nil, DefaultConfig())
	s := NewSessionState("s", DefaultConfig())
	SetFocus(s, testTopic("World War I"), topics.Easy)

	for i := 0; i < 2; i++ {
		SetQuestion(s, testQuestion(i))
		HandleAnswer(s, 2)
		f := p.Next(s, nil)
		if i == 0 && f.Level != topics.Easy {
			t.Errorf("after one correct: %v", f.Level)
		}
		if i == 1 && f.Level != topics.Medium {
			t.Errorf("after two correct: %v", f.Level)
		}
		if f.Topic.Name != "World War I" {
			t.Errorf("topic without model should stay, got %q", f.Topic.Name)
		}
		Advance(s, f.Level)
	}
}

func TestObservations(t *testing.T) {
	recs := []store.AnswerEventRecord{
		{AnswerEventData: store.AnswerEventData{Topic: "World War I", Level: "Easy", Correct: true}},
		{AnswerEventData: store.AnswerEventData{Topic: "World War I", Level: "bogus"}},
		{AnswerEventData: store.AnswerEventData{Topic: "World War II", Level: "Hard"}},
	}
	obs := Observations(recs)
	if len(obs) != 2 {
		t.Fatalf("len = %d", len(obs))
	}
	if obs[1].Level != topics.Hard || obs[1].Correct {
		t.Errorf("obs[1] = %+v", obs[1])
	}
}

func TestProgress(t *testing.T) {
	prog := Progress(weakWWIIHard())
	if len(prog) != 4 {
		t.Fatalf("len = %d", len(prog))
	}
	if prog[0].Topic != "World War I" || prog[0].Level != "Easy" || prog[0].Attempts != 3 || prog[0].Correct != 3 {
		t.Errorf("prog[0] = %+v", prog[0])
	}
	if prog[1].Correct != 0 || prog[1].Attempts != 3 {
		t.Errorf("prog[1] = %+v", prog[1])
	}
}
