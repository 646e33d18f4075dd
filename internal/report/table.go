package report

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderTable renders one line per answer.
func RenderTable(rows []Row) string {
	if len(rows) == 0 {
		return "No answers recorded yet."
	}
	t := newTable("#", "Topic", "Level", "Choice", "Result", "Question ID")
	for i, r := range rows {
		result := "wrong"
		if r.AnsweredCorrect == 1 {
			result = "correct"
		}
		t.Row(strconv.Itoa(i+1), r.Topic, r.Difficulty, strconv.Itoa(r.Choice), result, r.QuestionID)
	}
	return t.String()
}

// RenderStats renders per topic and difficulty totals.
func RenderStats(stats []Stat) string {
	if len(stats) == 0 {
		return ""
	}
	t := newTable("Topic", "Level", "Correct", "Accuracy")
	for _, s := range stats {
		t.Row(s.Topic, s.Difficulty, fmt.Sprintf("%d/%d", s.Correct, s.Attempts), fmt.Sprintf("%.0f%%", s.Accuracy*100))
	}
	return t.String()
}
