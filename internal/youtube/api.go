package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// APISearcher queries the YouTube Data API v3.
type APISearcher struct {
	svc *yt.Service
}

// NewAPISearcher creates a searcher authenticated with apiKey.
// Extra options are appended after the key.
func NewAPISearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APISearcher, error) {
	if apiKey == "" {
		return nil, errors.New("youtube API key is empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating youtube client: %w", err)
	}
	return &APISearcher{svc: svc}, nil
}

// Search runs search.list restricted to videos with strict safe search.
func (s *APISearcher) Search(ctx context.Context, query string, limit int) ([]Video, error) {
	if limit < 1 {
		limit = 1
	}
	resp, err := s.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		SafeSearch("strict").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError(err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := Video{ID: item.Id.VideoId, URL: WatchURL(item.Id.VideoId)}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.Channel = item.Snippet.ChannelTitle
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func wrapAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &SearchError{Code: gerr.Code, Message: gerr.Message, Err: err}
	}
	return &SearchError{Message: err.Error(), Err: err}
}
