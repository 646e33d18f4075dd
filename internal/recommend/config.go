package recommend

// Config controls query generation.
type Config struct {
	// Audience describes the learner in prompts.
	Audience string

	AnswerQueries int // queries requested after each answer
	FinalQueries  int // queries requested at the end of the quiz

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard query counts for a 6th grade audience.
func DefaultConfig() Config {
	return Config{
		Audience:      "6th grade student (age 11-12)",
		AnswerQueries: 3,
		FinalQueries:  5,
		MaxTokens:     300,
		Temperature:   0.7,
	}
}
