package questiongen

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChoice maps learner input to a 1-based option number.
// Accepts "1"-"4", "a"-"d" (optionally followed by ")" or "."),
// or the full text of an option, case-insensitively. A number outside 1-4
// is matched against the option text.
func ParseChoice(q *Question, input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}

	key := strings.TrimRight(strings.ToLower(s), ").")
	n, numErr := strconv.Atoi(key)
	if numErr == nil && n >= 1 && n <= NumChoices {
		return n, nil
	}
	if len(key) == 1 && key[0] >= 'a' && key[0] < 'a'+NumChoices {
		return int(key[0]-'a') + 1, nil
	}

	// Options are often years, so a number outside 1-4 may still be option text.
	for i, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), s) {
			return i + 1, nil
		}
	}
	if numErr == nil {
		return 0, fmt.Errorf("choice %d out of range 1-%d", n, NumChoices)
	}
	return 0, fmt.Errorf("%q does not match any option", s)
}

// CheckAnswer reports whether choice (1-based) is the correct option.
func CheckAnswer(q *Question, choice int) bool {
	return choice >= 1 && choice <= NumChoices && choice == q.Correct
}
