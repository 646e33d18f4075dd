package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/abhisek/histquiz/releases/latest", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		wantNewer bool
	}{
		{"newer release", "v0.2.0", "v0.3.0", true},
		{"same version", "v0.3.0", "v0.3.0", false},
		{"older release", "v1.0.0", "v0.9.9", false},
		{"missing v prefix", "0.2.0", "0.2.1", true},
		{"prerelease current", "v1.0.0-rc.1", "v1.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := releaseServer(t, http.StatusOK,
				`{"tag_name":"`+tt.tag+`","html_url":"https://github.com/abhisek/histquiz/releases/tag/`+tt.tag+`"}`)
			c := NewChecker(WithAPIBaseURL(srv.URL))

			res, err := c.Check(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNewer, res.UpdateAvailable)
			assert.Contains(t, res.ReleaseURL, "releases/tag")
		})
	}
}

func TestCheck_DevBuild(t *testing.T) {
	_, err := NewChecker().Check(context.Background(), "(devel)")
	require.ErrorIs(t, err, ErrDevBuild)
}

func TestCheck_HTTPError(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
	_, err := NewChecker(WithAPIBaseURL(srv.URL)).Check(context.Background(), "v0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCheck_BadTag(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"latest"}`)
	_, err := NewChecker(WithAPIBaseURL(srv.URL)).Check(context.Background(), "v0.1.0")
	require.Error(t, err)
}

func TestInstallCommand(t *testing.T) {
	r := &CheckResult{LatestVersion: "v0.4.0"}
	assert.Equal(t, "go install github.com/abhisek/histquiz@v0.4.0", r.InstallCommand())
}
