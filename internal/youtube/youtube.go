// Package youtube finds educational videos for a search query.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoResults is returned by First when a search finds nothing.
var ErrNoResults = errors.New("no videos found")

// Video is a single search result.
type Video struct {
	ID      string
	Title   string
	Channel string
	URL     string
}

// Searcher looks up videos for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Video, error)
}

// SearchError describes a failed search request.
type SearchError struct {
	Code    int // HTTP status, 0 for transport errors
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("video search failed (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("video search failed: %s", e.Message)
}

func (e *SearchError) Unwrap() error { return e.Err }

// First returns the first video s finds for query.
func First(ctx context.Context, s Searcher, query string) (*Video, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrNoResults
	}
	videos, err := s.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoResults
	}
	return &videos[0], nil
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Name reports a short label for s, used in metrics.
func Name(s Searcher) string {
	switch s.(type) {
	case *APISearcher:
		return "api"
	case *PageSearcher:
		return "page"
	default:
		return "other"
	}
}
