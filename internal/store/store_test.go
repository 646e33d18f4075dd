package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range append(allTables, "global_sequence") {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSequenceOrdersAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", QuestionID: "q1", Topic: "World War I", Level: "Easy", Choice: 1, CorrectChoice: 1, Correct: true}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := repo.AppendRecommendation(ctx, RecommendationEventData{SessionID: "s1", Kind: "answer", Query: "World War I for kids"}); err != nil {
		t.Fatalf("append recommendation: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "end", QuestionsServed: 1, CorrectAnswers: 1}); err != nil {
		t.Fatalf("append session end: %v", err)
	}

	answers, err := repo.QueryAnswerEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil || len(answers) != 1 {
		t.Fatalf("answers = %v, %v", answers, err)
	}
	recs, err := repo.QueryRecommendations(ctx, QueryOpts{SessionID: "s1"})
	if err != nil || len(recs) != 1 {
		t.Fatalf("recommendations = %v, %v", recs, err)
	}
	ends, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil || len(ends) != 1 {
		t.Fatalf("summaries = %v, %v", ends, err)
	}

	if !(answers[0].Sequence < recs[0].Sequence && recs[0].Sequence < ends[0].Sequence) {
		t.Errorf("sequences answer=%d rec=%d end=%d not increasing", answers[0].Sequence, recs[0].Sequence, ends[0].Sequence)
	}
}

func TestAnswerEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", QuestionID: "World War I_Easy_0", Topic: "World War I", Level: "Easy",
			QuestionText: "When did WWI start?", Choice: 2, CorrectChoice: 2, Correct: true, TimeMs: 4000},
		{SessionID: "s1", QuestionID: "World War I_Medium_1", Topic: "World War I", Level: "Medium",
			QuestionText: "Why did the US join?", Choice: 1, CorrectChoice: 3, Correct: false},
		{SessionID: "s2", QuestionID: "World War II_Easy_0", Topic: "World War II", Level: "Easy",
			QuestionText: "When did WWII end?", Choice: 4, CorrectChoice: 4, Correct: true},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d answers, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Errorf("answers not in sequence order: %d after %d", all[i].Sequence, all[i-1].Sequence)
		}
	}
	if !all[0].Correct || all[1].Correct {
		t.Errorf("correct flags = %v,%v, want true,false", all[0].Correct, all[1].Correct)
	}
	if all[1].CorrectChoice != 3 || all[1].Choice != 1 {
		t.Errorf("choices = %d/%d, want 1/3", all[1].Choice, all[1].CorrectChoice)
	}

	s1, err := repo.QueryAnswerEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query s1: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("s1 answers = %d, want 2", len(s1))
	}

	limited, err := repo.QueryAnswerEvents(ctx, QueryOpts{Limit: 1, After: all[0].Sequence})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].QuestionID != "World War I_Medium_1" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Action: "start", Topic: "World War I", Level: "Easy"},
		{SessionID: "a", Action: "end", Topic: "World War I", Level: "Medium", QuestionsServed: 6, CorrectAnswers: 4, DurationSecs: 120},
		{SessionID: "b", Action: "start"},
		{SessionID: "b", Action: "end", QuestionsServed: 6, CorrectAnswers: 6, DurationSecs: 90},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].SessionID != "b" {
		t.Errorf("first summary = %q, want most recent %q", got[0].SessionID, "b")
	}
	if got[1].CorrectAnswers != 4 || got[1].DurationSecs != 120 {
		t.Errorf("summary a = %+v", got[1].SessionEventData)
	}
}

func TestLLMEventsAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nask"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 120, OutputTokens: 60, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "video-queries", InputTokens: 80, OutputTokens: 20, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d events, want 3", len(list))
	}
	if list[0].Purpose != "video-queries" {
		t.Errorf("expected most recent first, got purpose %q", list[0].Purpose)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered = %d, want 2", len(filtered))
	}

	e, err := repo.GetLLMEvent(ctx, list[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "[user]\nask" {
		t.Fatalf("get returned %+v", e)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	qg := byPurpose[0]
	if qg.Purpose != "question-gen" || qg.Calls != 2 || qg.InputTokens != 220 || qg.AvgLatencyMs != 300 {
		t.Errorf("question-gen usage = %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 2 || byModel[0].OutputTokens != 110 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestRecommendations(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	recs := []RecommendationEventData{
		{SessionID: "s1", Kind: "answer", Topic: "World War I", Level: "Easy", Query: "World War I for kids",
			VideoID: "abc123", VideoTitle: "WWI in 5 minutes", VideoURL: "https://www.youtube.com/watch?v=abc123"},
		{SessionID: "s1", Kind: "final", Query: "World Wars timeline for middle school"},
	}
	for _, r := range recs {
		if err := repo.AppendRecommendation(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryRecommendations(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d, want 2", len(got))
	}
	if got[0].VideoID != "abc123" || got[1].VideoID != "" {
		t.Errorf("video IDs = %q,%q", got[0].VideoID, got[1].VideoID)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version:           1,
			SessionsCompleted: 3,
			Progress:          []TopicProgress{{Topic: "World War II", Level: "Hard", Attempts: 4, Correct: 1}},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.Data.SessionsCompleted != 3 || len(snap.Data.Progress) != 1 || snap.Data.Progress[0].Correct != 1 {
		t.Errorf("data = %+v", snap.Data)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune no-op: %v", err)
	}
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots after no-op = %d, want 5", count)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", QuestionID: "q", Topic: "t", Level: "Easy", QuestionText: "?", Choice: 1, CorrectChoice: 1, Correct: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1, Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("answers after reset = %d, want 0", len(got))
	}
	snap, err := s.SnapshotRepo().Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Error("expected no snapshot after reset")
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}
