package questiongen

import (
	"errors"
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Text:        "Which country was attacked at Pearl Harbor?",
		Options:     [NumChoices]string{"Britain", "France", "United States", "Russia"},
		Correct:     3,
		Explanation: "Japan attacked the US naval base at Pearl Harbor in 1941.",
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		ok     bool
	}{
		{"valid", func(*Question) {}, true},
		{"empty question", func(q *Question) { q.Text = "  " }, false},
		{"long question", func(q *Question) { q.Text = strings.Repeat("x", 501) }, false},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, false},
		{"long explanation", func(q *Question) { q.Explanation = strings.Repeat("x", 1001) }, false},
		{"empty option", func(q *Question) { q.Options[2] = "" }, false},
		{"correct zero", func(q *Question) { q.Correct = 0 }, false},
		{"correct five", func(q *Question) { q.Correct = 5 }, false},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, GenerateInput{})
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !err.Retryable {
					t.Error("structural errors should be retryable")
				}
			}
		})
	}
}

func TestDistinctOptionsValidator(t *testing.T) {
	v := &DistinctOptionsValidator{}
	if err := v.Validate(validQuestion(), GenerateInput{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	q := validQuestion()
	q.Options[3] = " britain "
	err := v.Validate(q, GenerateInput{})
	if err == nil {
		t.Fatal("expected duplicate option error")
	}
	if !strings.Contains(err.Message, "option4 duplicates option1") {
		t.Errorf("message = %q", err.Message)
	}
}

func TestDedupValidator(t *testing.T) {
	v := &DedupValidator{}
	in := GenerateInput{PriorQuestions: []string{"Who was Winston Churchill?"}}
	if err := v.Validate(validQuestion(), in); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	in.PriorQuestions = append(in.PriorQuestions, "which country was attacked at  Pearl Harbor")
	if err := v.Validate(validQuestion(), in); err == nil {
		t.Error("expected duplicate error")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Validator: "dedup", Message: "seen"}
	if err.Error() != `validator "dedup": seen` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil should not be retryable")
	}
	if !IsRetryable(errors.New("network")) {
		t.Error("plain errors should be retryable")
	}
	if IsRetryable(&ValidationError{Retryable: false}) {
		t.Error("non-retryable validation error")
	}
	if !IsRetryable(&ValidationError{Retryable: true}) {
		t.Error("retryable validation error")
	}
}
