package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type recommendationRow struct {
	ID         int64  `sql:"id"`
	Sequence   int64  `sql:"sequence"`
	Timestamp  int64  `sql:"timestamp"`
	SessionID  string `sql:"session_id"`
	Kind       string `sql:"kind"`
	Topic      string `sql:"topic"`
	Level      string `sql:"level"`
	Query      string `sql:"query"`
	VideoID    string `sql:"video_id"`
	VideoTitle string `sql:"video_title"`
	VideoURL   string `sql:"video_url"`
}

func (r *eventRepo) AppendRecommendation(ctx context.Context, data RecommendationEventData) error {
	err := r.insert(ctx, tableRecommendationEvents,
		[]string{"session_id", "kind", "topic", "level", "query", "video_id", "video_title", "video_url"},
		[]any{data.SessionID, data.Kind, data.Topic, data.Level, data.Query, data.VideoID, data.VideoTitle, data.VideoURL},
	)
	if err != nil {
		return fmt.Errorf("save recommendation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRecommendations(ctx context.Context, opts QueryOpts) ([]RecommendationRecord, error) {
	s := selectFrom(tableRecommendationEvents, opts,
		"id", "sequence", "timestamp", "session_id", "kind", "topic", "level",
		"query", "video_id", "video_title", "video_url").
		OrderBy(entsql.Asc("sequence"))
	if opts.SessionID != "" {
		s.Where(entsql.EQ("session_id", opts.SessionID))
	}

	var rows []recommendationRow
	if err := r.scanAll(ctx, s, &rows); err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}

	out := make([]RecommendationRecord, len(rows))
	for i, row := range rows {
		out[i] = RecommendationRecord{
			ID:        int(row.ID),
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
			RecommendationEventData: RecommendationEventData{
				SessionID:  row.SessionID,
				Kind:       row.Kind,
				Topic:      row.Topic,
				Level:      row.Level,
				Query:      row.Query,
				VideoID:    row.VideoID,
				VideoTitle: row.VideoTitle,
				VideoURL:   row.VideoURL,
			},
		}
	}
	return out, nil
}
