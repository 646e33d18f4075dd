package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var okResp = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func failWith(kind ErrorKind) MockResponse {
	return MockResponse{Err: &Error{Kind: kind, Err: errors.New(kind.String())}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okResp}, false, 1},
		{"outage then success", []MockResponse{failWith(KindUnavailable), okResp}, false, 2},
		{"rate limited then success", []MockResponse{{Err: &Error{Kind: KindRateLimited, RetryAfter: time.Millisecond}}, okResp}, false, 2},
		{"gives up after max attempts", []MockResponse{failWith(KindUnavailable), failWith(KindUnavailable), failWith(KindUnavailable), okResp}, true, 3},
		{"truncation is final", []MockResponse{failWith(KindTruncated), okResp}, true, 1},
		{"schema mismatch retried once", []MockResponse{failWith(KindInvalidResponse), failWith(KindInvalidResponse), okResp}, true, 2},
		{"untyped errors are retried", []MockResponse{{Err: errors.New("reset")}, okResp}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	mock := NewMockProvider(failWith(KindUnavailable), okResp)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	if w := r.backoff(5, errors.New("x")); w < 240*time.Millisecond || w > 360*time.Millisecond {
		t.Fatalf("capped wait = %v", w)
	}
	if w := r.backoff(0, &Error{Kind: KindRateLimited, RetryAfter: 7 * time.Second}); w != 7*time.Second {
		t.Fatalf("RetryAfter wait = %v", w)
	}
}

func TestRetry_ReportsInnerName(t *testing.T) {
	p := WithRetry(WithLogging(NewMockProvider(), nil, nil), fastRetry())
	if providerName(p) != "mock" || p.ModelID() != "mock" {
		t.Fatalf("name = %q, model = %q", providerName(p), p.ModelID())
	}
}
