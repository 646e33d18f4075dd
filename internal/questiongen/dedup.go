package questiongen

import (
	"fmt"
	"strings"
)

// DedupValidator rejects a question already asked in this session.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	text := normalize(q.Text)
	for _, prior := range input.PriorQuestions {
		if normalize(prior) == text {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question was already asked in this session",
				Retryable: true,
			}
		}
	}
	return nil
}

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			space = true
		case r == '?' || r == '.' || r == '!' || r == ',' || r == '"' || r == '\'':
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// numberedList formats items for the prompt, keeping only the most recent
// max entries. Returns "None" when empty.
func numberedList(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
