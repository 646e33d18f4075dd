// Package report exports the answer log.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/histquiz/internal/store"
)

// DefaultFileName is the file the results screen exports to.
const DefaultFileName = "world_wars_quiz_progress.csv"

// Format is an export format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want csv, json or table)", s)
}

// Row is one answered question.
type Row struct {
	Topic           string    `json:"topic"`
	Difficulty      string    `json:"difficulty"`
	AnsweredCorrect int       `json:"answered_correct"`
	Choice          int       `json:"choice"`
	QuestionID      string    `json:"question_id"`
	SessionID       string    `json:"session_id"`
	Timestamp       time.Time `json:"timestamp"`
}

// Stat aggregates rows for one topic and difficulty.
type Stat struct {
	Topic      string  `json:"topic"`
	Difficulty string  `json:"difficulty"`
	Attempts   int     `json:"attempts"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
}

// Report is the JSON export document.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	SessionID   string    `json:"session_id,omitempty"`
	Sessions    int       `json:"sessions"`
	Total       int       `json:"total"`
	Correct     int       `json:"correct"`
	Accuracy    float64   `json:"accuracy"`
	Stats       []Stat    `json:"stats"`
	Rows        []Row     `json:"rows"`
}

// Load reads the answer log, optionally limited to one session.
func Load(ctx context.Context, repo store.EventRepo, sessionID string) ([]Row, error) {
	recs, err := repo.QueryAnswerEvents(ctx, store.QueryOpts{SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	return FromAnswers(recs), nil
}

// FromAnswers converts persisted answers to rows.
func FromAnswers(recs []store.AnswerEventRecord) []Row {
	rows := make([]Row, len(recs))
	for i, r := range recs {
		correct := 0
		if r.Correct {
			correct = 1
		}
		rows[i] = Row{
			Topic:           r.Topic,
			Difficulty:      r.Level,
			AnsweredCorrect: correct,
			Choice:          r.Choice,
			QuestionID:      r.QuestionID,
			SessionID:       r.SessionID,
			Timestamp:       r.Timestamp,
		}
	}
	return rows
}

var csvHeader = []string{"topic", "difficulty", "answered_correct", "choice", "question_id"}

// WriteCSV writes rows with the topic,difficulty,answered_correct,choice,question_id header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Topic,
			r.Difficulty,
			strconv.Itoa(r.AnsweredCorrect),
			strconv.Itoa(r.Choice),
			r.QuestionID,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Build assembles the JSON document for rows.
func Build(rows []Row, sessionID string, now time.Time) Report {
	rep := Report{
		GeneratedAt: now.UTC(),
		SessionID:   sessionID,
		Total:       len(rows),
		Stats:       Aggregate(rows),
		Rows:        rows,
	}
	if rep.Rows == nil {
		rep.Rows = []Row{}
	}
	sessions := make(map[string]bool)
	for _, r := range rows {
		rep.Correct += r.AnsweredCorrect
		sessions[r.SessionID] = true
	}
	rep.Sessions = len(sessions)
	if rep.Total > 0 {
		rep.Accuracy = float64(rep.Correct) / float64(rep.Total)
	}
	return rep
}

// WriteJSON writes the indented JSON report.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// Aggregate groups rows by topic and difficulty in first-seen order.
func Aggregate(rows []Row) []Stat {
	index := make(map[[2]string]int)
	stats := []Stat{}
	for _, r := range rows {
		k := [2]string{r.Topic, r.Difficulty}
		i, ok := index[k]
		if !ok {
			i = len(stats)
			index[k] = i
			stats = append(stats, Stat{Topic: r.Topic, Difficulty: r.Difficulty})
		}
		stats[i].Attempts++
		stats[i].Correct += r.AnsweredCorrect
	}
	for i := range stats {
		stats[i].Accuracy = float64(stats[i].Correct) / float64(stats[i].Attempts)
	}
	return stats
}

// Write renders rows in the given format.
func Write(w io.Writer, f Format, rows []Row, sessionID string) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, Build(rows, sessionID, time.Now()))
	case FormatTable:
		_, err := io.WriteString(w, RenderTable(rows)+"\n\n"+RenderStats(Aggregate(rows))+"\n")
		return err
	}
	return fmt.Errorf("unknown report format %q", f)
}
