package recommend

import (
	"context"
	"errors"

	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/youtube"
)

// SearchHint is shown in place of a video when none was found.
const SearchHint = "Search this on YouTube to learn more!"

// Recommendation pairs a search query with the video found for it.
type Recommendation struct {
	Query string
	Video *youtube.Video // nil when nothing was found
}

// Found reports whether a video was resolved.
func (r Recommendation) Found() bool { return r.Video != nil }

// Lookup resolves every query to its first video. searcher may be nil,
// in which case nothing is resolved.
func Lookup(ctx context.Context, searcher youtube.Searcher, m *metrics.Metrics, queries []string) []Recommendation {
	out := make([]Recommendation, len(queries))
	for i, q := range queries {
		out[i] = Recommendation{Query: q, Video: lookupOne(ctx, searcher, m, q)}
	}
	return out
}

// LookupFirst returns the first query that resolves to a video, stopping
// the search there. ok is false when no query resolved.
func LookupFirst(ctx context.Context, searcher youtube.Searcher, m *metrics.Metrics, queries []string) (Recommendation, bool) {
	for _, q := range queries {
		if v := lookupOne(ctx, searcher, m, q); v != nil {
			return Recommendation{Query: q, Video: v}, true
		}
		if ctx.Err() != nil {
			break
		}
	}
	return Recommendation{}, false
}

func lookupOne(ctx context.Context, searcher youtube.Searcher, m *metrics.Metrics, query string) *youtube.Video {
	if searcher == nil {
		return nil
	}
	v, err := youtube.First(ctx, searcher, query)
	m.ObserveVideoLookup(youtube.Name(searcher), err == nil)
	if err != nil {
		if !errors.Is(err, youtube.ErrNoResults) {
			log := logging.FromContext(ctx)
			log.Debug().Err(err).Str("query", query).Msg("video lookup failed")
		}
		return nil
	}
	return v
}
