package questiongen

import "github.com/abhisek/histquiz/internal/topics"

// NumChoices is the number of answer options on every question.
const NumChoices = 4

// Question is a generated multiple-choice question ready for display.
type Question struct {
	// ID identifies the question within the answer log,
	// formatted as <topic>_<level>_<n>.
	ID string

	// Text is the question prompt shown to the learner.
	Text string

	// Options holds the four answer options in display order.
	Options [NumChoices]string

	// Correct is the 1-based index of the correct option.
	Correct int

	// Explanation is shown after the learner answers.
	Explanation string

	Topic string
	Level topics.Level
}

// CorrectText returns the text of the correct option.
func (q *Question) CorrectText() string {
	if q.Correct < 1 || q.Correct > NumChoices {
		return ""
	}
	return q.Options[q.Correct-1]
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	Topic topics.Topic
	Level topics.Level

	// Audience describes who the question is for,
	// e.g. "6th grade students (ages 11-12)".
	Audience string

	// PriorQuestions contains the Text of questions already asked in this
	// session. Used for deduplication in the prompt and by DedupValidator.
	PriorQuestions []string

	// RecentErrors describes the learner's recent mistakes,
	// most recent last.
	RecentErrors []string
}
