package recommend

import (
	"fmt"
	"strings"
)

const systemPrompt = `You suggest YouTube search queries that help students learn history.

Rules:
- Prefer educational channels suitable for middle school students.
- Content must be age-appropriate; no graphic or inappropriate material.
- Favor visual, engaging documentaries and simple explanations.
- Make each query specific and educational.
- Return only the queries, without numbering.`

// performanceContext phrases a correctness ratio for the prompt.
func performanceContext(performance float64) string {
	if performance < 0.5 {
		return "having some difficulty"
	}
	return "doing well"
}

func buildAnswerMessage(in AnswerInput, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s is %s with %s level questions about %s.\n\n",
		cfg.Audience, performanceContext(in.Performance), in.Level, in.Topic)
	fmt.Fprintf(&b, "Generate %d educational YouTube search queries that would help them learn better.\n", cfg.AnswerQueries)
	fmt.Fprintf(&b, "Include simple explanations of %s.", in.Topic)
	return b.String()
}

func buildFinalMessage(score, total int, cfg Config) string {
	pct := Percent(score, total)
	band := BandFor(pct)

	var b strings.Builder
	fmt.Fprintf(&b, "A %s just completed a World Wars quiz with %d/%d correct (%.0f%%).\n", cfg.Audience, score, total, pct)
	fmt.Fprintf(&b, "They show %s and should focus on %s.\n\n", band.description(), band.focus())
	fmt.Fprintf(&b, "Generate %d specific, educational YouTube search queries that would help this student improve, matching their current level.", cfg.FinalQueries)
	return b.String()
}
