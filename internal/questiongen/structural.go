package questiongen

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case strings.TrimSpace(q.Text) == "":
		return fail("question is empty")
	case len(q.Text) > 500:
		return fail("question exceeds 500 characters")
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > 1000:
		return fail("explanation exceeds 1000 characters")
	case q.Correct < 1 || q.Correct > NumChoices:
		return fail(fmt.Sprintf("correct_answer must be between 1 and %d, got %d", NumChoices, q.Correct))
	}

	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option%d is empty", i+1))
		}
		if len(opt) > 200 {
			return fail(fmt.Sprintf("option%d exceeds 200 characters", i+1))
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat, since
// two identical options make the answer ambiguous.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	seen := make(map[string]int, NumChoices)
	for i, opt := range q.Options {
		key := normalize(opt)
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option%d duplicates option%d", i+1, j+1),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}
