package questiongen

import "github.com/abhisek/histquiz/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "history-question",
	Description: "A single multiple-choice history question with four options and an explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner",
			},
			"option1": map[string]any{"type": "string", "description": "First option"},
			"option2": map[string]any{"type": "string", "description": "Second option"},
			"option3": map[string]any{"type": "string", "description": "Third option"},
			"option4": map[string]any{"type": "string", "description": "Fourth option"},
			"correct_answer": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     4,
				"description": "Which option (1-4) is correct",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A short, simple explanation of the correct answer",
			},
		},
		"required":             []any{"question", "option1", "option2", "option3", "option4", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}
