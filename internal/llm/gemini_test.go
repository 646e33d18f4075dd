package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":       map[string]any{"type": "string", "description": "The prompt"},
			"correct_answer": map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
			"level":          map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
			"queries":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []any{"question", "correct_answer"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)

	if s.Type != genai.TypeObject || len(s.Properties) != 4 || len(s.Required) != 2 {
		t.Fatalf("schema = %+v", s)
	}
	if q := s.Properties["question"]; q.Type != genai.TypeString || q.Description != "The prompt" {
		t.Fatalf("question = %+v", q)
	}
	ans := s.Properties["correct_answer"]
	if ans.Type != genai.TypeInteger || ans.Minimum == nil || *ans.Minimum != 1 || *ans.Maximum != 4 {
		t.Fatalf("correct_answer = %+v", ans)
	}
	if len(s.Properties["level"].Enum) != 3 {
		t.Fatalf("level enum = %v", s.Properties["level"].Enum)
	}
	if items := s.Properties["queries"].Items; items == nil || items.Type != genai.TypeString {
		t.Fatalf("queries items = %+v", items)
	}
}

func TestNewGeminiProvider_ResolvesAlias(t *testing.T) {
	p := &GeminiProvider{model: ResolveModel("gemini", "gemini-pro")}
	if p.ModelID() != "gemini-2.5-pro" || p.Name() != "gemini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
