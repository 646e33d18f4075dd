package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/llm"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/topics"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a topic (no database)",
	Long: `Generate and interactively answer questions for one topic and level.

This is a stateless developer tool: no database, no adaptation, no videos.
Useful for evaluating question quality and trying new topics.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "world-war-i", "Topic ID, name, or any custom subject")
	previewCmd.Flags().String("level", "Easy", "Difficulty level: Easy, Medium or Hard")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topicVal, _ := cmd.Flags().GetString("topic")
	levelVal, _ := cmd.Flags().GetString("level")
	count, _ := cmd.Flags().GetInt("count")

	topic := topics.Resolve(topics.DefaultTopics(), topicVal)
	level, err := topics.ParseLevel(levelVal)
	if err != nil {
		return err
	}

	// No EventRepo: logging to the database is skipped.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, appCfg.LLM, nil, metrics.New())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := questiongen.New(provider, questiongen.DefaultConfig())
	scanner := bufio.NewScanner(os.Stdin)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Topic: %s (%s)\n", topic.Name, level)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	var correct int
	var prior []string

	for i := 1; i <= count; i++ {
		q, err := gen.Generate(ctx, questiongen.GenerateInput{
			Topic:          topic,
			Level:          level,
			Audience:       appCfg.Quiz.Audience,
			PriorQuestions: prior,
		})
		if err != nil {
			fmt.Fprintf(out, "Question %d: generation failed: %v\n\n", i, err)
			continue
		}
		prior = append(prior, q.Text)

		fmt.Fprintf(out, "── Question %d/%d ──\n", i, count)
		fmt.Fprintln(out, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+j, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		choice, err := questiongen.ParseChoice(q, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "(skipped: %v) Answer: %s\n\n", err, q.CorrectText())
			continue
		}

		if questiongen.CheckAnswer(q, choice) {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectText())
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
