package recommend

import "github.com/abhisek/histquiz/internal/llm"

// QueriesSchema defines the JSON schema for search query responses.
var QueriesSchema = &llm.Schema{
	Name:        "video-queries",
	Description: "Educational YouTube search queries for a student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"queries": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Search queries, most useful first, without numbering",
			},
		},
		"required":             []any{"queries"},
		"additionalProperties": false,
	},
}
