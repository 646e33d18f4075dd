package questiongen

import (
	"fmt"
	"strings"
)

// DefaultAudience is used when GenerateInput.Audience is empty.
const DefaultAudience = "6th grade students (ages 11-12)"

const systemPrompt = `You are a history teacher writing quiz questions for middle-school students.

Rules:
- Write a single multiple-choice question about the given topic at the given difficulty level.
- Use simple, clear language appropriate for the audience.
- Focus on major facts and well-known events. Avoid overly complex political concepts.
- Keep content educational and age-appropriate, including sensitive subjects such as war and genocide.
- Provide exactly 4 options. Exactly one is correct; distractors should be plausible, not silly.
- correct_answer is the number (1-4) of the correct option.
- The explanation should be short and suitable for the audience.
- Do not repeat any question from the "already asked" list.
- If the learner made recent mistakes, you may revisit the same idea from a different angle.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	audience := input.Audience
	if audience == "" {
		audience = DefaultAudience
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic.Name)
	if input.Topic.Description != "" && input.Topic.Description != input.Topic.Name {
		fmt.Fprintf(&b, "Description: %s\n", input.Topic.Description)
	}
	fmt.Fprintf(&b, "Audience: %s\n", audience)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Level)
	fmt.Fprintf(&b, "Complexity: %s\n", input.Level.Complexity())

	if len(input.Topic.Focus) > 0 {
		b.WriteString("\nSubjects to draw from:\n")
		for _, f := range input.Topic.Focus {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(numberedList(input.PriorQuestions, cfg.MaxPriorQuestions))

	b.WriteString("\n\nRecent mistakes by this student:\n")
	b.WriteString(numberedList(input.RecentErrors, cfg.MaxRecentErrors))

	return b.String()
}
