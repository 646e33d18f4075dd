package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type sessionRow struct {
	ID              int64  `sql:"id"`
	Sequence        int64  `sql:"sequence"`
	Timestamp       int64  `sql:"timestamp"`
	SessionID       string `sql:"session_id"`
	Action          string `sql:"action"`
	Topic           string `sql:"topic"`
	Level           string `sql:"level"`
	QuestionsServed int64  `sql:"questions_served"`
	CorrectAnswers  int64  `sql:"correct_answers"`
	DurationSecs    int64  `sql:"duration_secs"`
}

type answerRow struct {
	ID            int64  `sql:"id"`
	Sequence      int64  `sql:"sequence"`
	Timestamp     int64  `sql:"timestamp"`
	SessionID     string `sql:"session_id"`
	QuestionID    string `sql:"question_id"`
	Topic         string `sql:"topic"`
	Level         string `sql:"level"`
	QuestionText  string `sql:"question_text"`
	Choice        int64  `sql:"choice"`
	CorrectChoice int64  `sql:"correct_choice"`
	Correct       int64  `sql:"correct"`
	TimeMs        int64  `sql:"time_ms"`
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, tableSessionEvents,
		[]string{"session_id", "action", "topic", "level", "questions_served", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Topic, data.Level, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, tableAnswerEvents,
		[]string{"session_id", "question_id", "topic", "level", "question_text", "choice", "correct_choice", "correct", "time_ms"},
		[]any{data.SessionID, data.QuestionID, data.Topic, data.Level, data.QuestionText, data.Choice, data.CorrectChoice, boolInt(data.Correct), data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	s := selectFrom(tableAnswerEvents, opts,
		"id", "sequence", "timestamp", "session_id", "question_id", "topic", "level",
		"question_text", "choice", "correct_choice", "correct", "time_ms").
		OrderBy(entsql.Asc("sequence"))
	if opts.SessionID != "" {
		s.Where(entsql.EQ("session_id", opts.SessionID))
	}

	var rows []answerRow
	if err := r.scanAll(ctx, s, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}

	out := make([]AnswerEventRecord, len(rows))
	for i, row := range rows {
		out[i] = AnswerEventRecord{
			ID:        int(row.ID),
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
			AnswerEventData: AnswerEventData{
				SessionID:     row.SessionID,
				QuestionID:    row.QuestionID,
				Topic:         row.Topic,
				Level:         row.Level,
				QuestionText:  row.QuestionText,
				Choice:        int(row.Choice),
				CorrectChoice: int(row.CorrectChoice),
				Correct:       row.Correct != 0,
				TimeMs:        row.TimeMs,
			},
		}
	}
	return out, nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	s := selectFrom(tableSessionEvents, opts,
		"id", "sequence", "timestamp", "session_id", "action", "topic", "level",
		"questions_served", "correct_answers", "duration_secs").
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		s.Where(entsql.EQ("session_id", opts.SessionID))
	}

	var rows []sessionRow
	if err := r.scanAll(ctx, s, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	out := make([]SessionSummaryRecord, len(rows))
	for i, row := range rows {
		out[i] = SessionSummaryRecord{
			ID:        int(row.ID),
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
			SessionEventData: SessionEventData{
				SessionID:       row.SessionID,
				Action:          row.Action,
				Topic:           row.Topic,
				Level:           row.Level,
				QuestionsServed: int(row.QuestionsServed),
				CorrectAnswers:  int(row.CorrectAnswers),
				DurationSecs:    int(row.DurationSecs),
			},
		}
	}
	return out, nil
}
