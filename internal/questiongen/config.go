package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question;
	// the first failure stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps the already-asked list in the prompt.
	MaxPriorQuestions int

	// MaxRecentErrors caps the recent-mistakes list in the prompt.
	MaxRecentErrors int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
			&DedupValidator{},
		},
		MaxTokens:         600,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
		MaxRecentErrors:   5,
	}
}
