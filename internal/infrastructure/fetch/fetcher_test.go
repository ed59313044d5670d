package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar/internal/shared/config"
	"sonar/internal/shared/logger"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		TimeoutSeconds: 5,
		UserAgent:      "test-agent",
		MaxBodyBytes:   1 << 20,
		MaxConcurrent:  4,
		MaxRetries:     2,
		AllowPrivate:   true,
	}
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/sub"))
	assert.True(t, IsURL("  HTTP://example.com/sub"))
	assert.False(t, IsURL("vless://uuid@example.com:443"))
	assert.False(t, IsURL("example.com/sub"))
	assert.False(t, IsURL(""))
}

func TestFetchSuccess(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		io.WriteString(w, "vless://uuid@a.example.com:443#A")
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig(), quietLogger())
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "vless://uuid@a.example.com:443#A", body)
	assert.Equal(t, "test-agent", gotUA.Load())
}

func TestFetchClientErrorNotRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig(), quietLogger())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), requests.Load())
}

func TestFetchServerErrorRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "try again", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, "body")
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig(), quietLogger())
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "body", body)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchBodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, strings.Repeat("x", 100))
	}))
	defer srv.Close()

	cfg := testFetchConfig()
	cfg.MaxBodyBytes = 10
	f := NewFetcher(cfg, quietLogger())

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestFetchRejectsPrivateHosts(t *testing.T) {
	cfg := testFetchConfig()
	cfg.AllowPrivate = false
	f := NewFetcher(cfg, quietLogger())

	tests := []string{
		"http://127.0.0.1:8080/sub",
		"http://169.254.169.254/latest/meta-data/",
		"http://10.0.0.5/sub",
		"http://localhost/sub",
	}
	for _, rawURL := range tests {
		_, err := f.Fetch(context.Background(), rawURL)
		assert.Error(t, err, rawURL)
	}
}

func TestFetchRejectsBadURLs(t *testing.T) {
	f := NewFetcher(testFetchConfig(), quietLogger())

	_, err := f.Fetch(context.Background(), "ftp://example.com/sub")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "https:///no-host")
	assert.Error(t, err)
}

func TestFetchAllOrderedResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a":
			io.WriteString(w, "body-a")
		case "/b":
			http.Error(w, "nope", http.StatusForbidden)
		default:
			io.WriteString(w, "body-c")
		}
	}))
	defer srv.Close()

	f := NewFetcher(testFetchConfig(), quietLogger())
	results := f.FetchAll(context.Background(), []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"})
	require.Len(t, results, 3)

	assert.Equal(t, "body-a", results[0].Body)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "body-c", results[2].Body)
	assert.Equal(t, srv.URL+"/b", results[1].URL)
}

func TestFetchAllBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	inflight, maxInflight := 0, 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inflight++
		if inflight > maxInflight {
			maxInflight = inflight
		}
		mu.Unlock()

		defer func() {
			mu.Lock()
			inflight--
			mu.Unlock()
		}()
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	cfg := testFetchConfig()
	cfg.MaxConcurrent = 2
	f := NewFetcher(cfg, quietLogger())

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = srv.URL + "/sub"
	}
	results := f.FetchAll(context.Background(), urls)
	require.Len(t, results, 8)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
	assert.LessOrEqual(t, maxInflight, 2)
}

func TestFetchAllEmpty(t *testing.T) {
	f := NewFetcher(testFetchConfig(), quietLogger())
	assert.Empty(t, f.FetchAll(context.Background(), nil))
}
