package youtube

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const resultsURL = "https://www.youtube.com/results"

var (
	reVideoRenderer = regexp.MustCompile(`"videoRenderer":\{"videoId":"([A-Za-z0-9_-]{11})"`)
	reTitleRun      = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
)

// PageSearcher scrapes the public results page. It needs no API key but
// depends on the page layout.
type PageSearcher struct {
	Client  *http.Client
	BaseURL string // defaults to the public results page
}

// NewPageSearcher creates a PageSearcher with the given request timeout.
func NewPageSearcher(timeout time.Duration) *PageSearcher {
	return &PageSearcher{Client: &http.Client{Timeout: timeout}}
}

func (s *PageSearcher) Search(ctx context.Context, query string, limit int) ([]Video, error) {
	base := s.BaseURL
	if base == "" {
		base = resultsURL
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	// sp=EgIQAQ== restricts results to videos.
	u := base + "?" + url.Values{"search_query": {query}, "sp": {"EgIQAQ=="}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &SearchError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &SearchError{Message: "fetching results page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &SearchError{Message: "reading results page", Err: err}
	}
	return parseResults(body, limit), nil
}

// parseResults extracts unique videos in page order.
func parseResults(body []byte, limit int) []Video {
	locs := reVideoRenderer.FindAllSubmatchIndex(body, -1)
	seen := make(map[string]bool)
	var videos []Video
	for i, loc := range locs {
		id := string(body[loc[2]:loc[3]])
		if seen[id] {
			continue
		}
		seen[id] = true

		// The title belongs to this renderer only if it appears before the next one.
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		v := Video{ID: id, URL: WatchURL(id)}
		if m := reTitleRun.FindSubmatch(body[loc[1]:end]); m != nil {
			v.Title = unescapeJSON(string(m[1]))
		}
		videos = append(videos, v)
		if limit > 0 && len(videos) >= limit {
			break
		}
	}
	return videos
}

func unescapeJSON(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return html.UnescapeString(s)
	}
	return html.UnescapeString(out)
}
