package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"question":"Who led Britain in WWII?"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
	})
	repo := &recordingRepo{}
	m := metrics.New()
	p := WithLogging(mock, repo, m)

	ctx := WithPurpose(context.Background(), "question-gen")
	_, err := p.Generate(ctx, Request{
		System:   "You write history questions.",
		Messages: []Message{{Role: RoleUser, Content: "Topic: World War II"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Purpose != "question-gen" || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 8 {
		t.Errorf("tokens = %d/%d, want 12/8", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[system]\nYou write history questions.") {
		t.Errorf("request body missing system prompt: %q", e.RequestBody)
	}
	if !strings.Contains(e.ResponseBody, "Who led Britain") {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if got := testutil.ToFloat64(m.LLMRequests.WithLabelValues("question-gen", "success")); got != 1 {
		t.Errorf("llm success counter = %v, want 1", got)
	}
}

func TestLogging_RecordsFailureAndLogs(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindRateLimited, Err: errors.New("429")}})
	repo := &recordingRepo{}

	var buf bytes.Buffer
	ctx := logging.IntoContext(context.Background(), logging.New("histquiz", "test", "debug", &buf))
	ctx = WithPurpose(ctx, PurposeVideos)

	_, err := WithLogging(mock, repo, nil).Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
	if !strings.Contains(buf.String(), "llm request failed") {
		t.Errorf("expected warning log, got %q", buf.String())
	}
}

func TestLogging_EventWriteFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &recordingRepo{err: errors.New("disk full")}

	resp, err := WithLogging(mock, repo, nil).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected response")
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := WithLogging(mock, nil, nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "object"}},
	})
	for _, want := range []string{"[system]\nsys", "[user]\nhi", "[schema: s]", `{"type":"object"}`} {
		if !strings.Contains(got, want) {
			t.Errorf("serialized request missing %q:\n%s", want, got)
		}
	}
}
