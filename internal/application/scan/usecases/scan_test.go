package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar/internal/domain/descriptor"
	"sonar/internal/infrastructure/fetch"
	"sonar/internal/shared/errors"
	"sonar/internal/shared/logger"

	sharedconfig "sonar/internal/shared/config"
)

type mockFetcher struct {
	fn func(ctx context.Context, urls []string) []fetch.SourceResult
}

func (m *mockFetcher) FetchAll(ctx context.Context, urls []string) []fetch.SourceResult {
	if m.fn == nil {
		return make([]fetch.SourceResult, len(urls))
	}
	return m.fn(ctx, urls)
}

type mockScanner struct {
	gotTimeout     time.Duration
	gotConcurrency int
	fn             func(d descriptor.Descriptor) descriptor.Outcome
}

func (m *mockScanner) Scan(_ context.Context, list []descriptor.Descriptor, timeout time.Duration, concurrency int) ([]descriptor.ScanResult, error) {
	m.gotTimeout = timeout
	m.gotConcurrency = concurrency

	results := make([]descriptor.ScanResult, len(list))
	for i, d := range list {
		outcome := descriptor.Outcome{OK: true, ElapsedMS: 10}
		if m.fn != nil {
			outcome = m.fn(d)
		}
		results[i] = descriptor.ScanResult{Descriptor: d, Outcome: outcome}
	}
	return results, nil
}

func testScanConfig() sharedconfig.ScanConfig {
	return sharedconfig.ScanConfig{DefaultTimeoutMS: 3000, DefaultConcurrency: 25, MaxResults: 500}
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newUseCase(fetcher *mockFetcher, scanner *mockScanner, cfg sharedconfig.ScanConfig) *ScanUseCase {
	return NewScanUseCase(fetcher, scanner, cfg, quietLogger())
}

func TestScanRanksReachableByLatency(t *testing.T) {
	latencies := map[string]descriptor.Outcome{
		"n1.example.com": {OK: true, ElapsedMS: 120},
		"n2.example.com": {OK: true, ElapsedMS: 45},
		"n3.example.com": {OK: true, ElapsedMS: 300},
		"n4.example.com": {ElapsedMS: 3000, Error: "timeout"},
		"n5.example.com": {OK: true, ElapsedMS: 80},
	}
	scanner := &mockScanner{fn: func(d descriptor.Descriptor) descriptor.Outcome {
		return latencies[d.Host]
	}}
	uc := newUseCase(&mockFetcher{}, scanner, testScanConfig())

	resp, err := uc.Execute(context.Background(), ScanCommand{
		Text: "vless://u@n1.example.com:443#n1\n" +
			"vless://u@n2.example.com:443#n2\n" +
			"vless://u@n3.example.com:443#n3\n" +
			"vless://u@n4.example.com:443#n4\n" +
			"vless://u@n5.example.com:443#n5",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 4, resp.Reachable)
	require.Len(t, resp.Results, 4)

	var got []int64
	for _, r := range resp.Results {
		assert.True(t, r.OK)
		assert.Empty(t, r.Error)
		got = append(got, r.ElapsedMS)
	}
	assert.Equal(t, []int64{45, 80, 120, 300}, got)
	assert.Equal(t, "n2.example.com", resp.Results[0].Host)
}

func TestScanClampsTimeoutAndConcurrency(t *testing.T) {
	tests := []struct {
		name            string
		timeoutMS       int
		concurrency     int
		wantTimeout     time.Duration
		wantConcurrency int
	}{
		{"defaults applied for zero", 0, 0, 3 * time.Second, 25},
		{"below minimum clamped", 50, 0, 500 * time.Millisecond, 25},
		{"above maximum clamped", 60000, 500, 10 * time.Second, 100},
		{"negative treated as absent", -5, -5, 3 * time.Second, 25},
		{"in range passes through", 2000, 10, 2 * time.Second, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := &mockScanner{}
			uc := newUseCase(&mockFetcher{}, scanner, testScanConfig())

			resp, err := uc.Execute(context.Background(), ScanCommand{
				Text:        "vless://u@a.example.com:443#a",
				TimeoutMS:   tt.timeoutMS,
				Concurrency: tt.concurrency,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTimeout, scanner.gotTimeout)
			assert.Equal(t, tt.wantConcurrency, scanner.gotConcurrency)
			assert.Equal(t, int(tt.wantTimeout.Milliseconds()), resp.TimeoutMS)
		})
	}
}

func TestScanTruncatesResults(t *testing.T) {
	var text string
	for i := 0; i < 5; i++ {
		text += fmt.Sprintf("vless://u@node-%d.example.com:443#n%d\n", i, i)
	}
	scanner := &mockScanner{fn: func(d descriptor.Descriptor) descriptor.Outcome {
		return descriptor.Outcome{OK: true, ElapsedMS: 10}
	}}

	cfg := testScanConfig()
	cfg.MaxResults = 2
	uc := newUseCase(&mockFetcher{}, scanner, cfg)

	resp, err := uc.Execute(context.Background(), ScanCommand{Text: text})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 5, resp.Reachable)
	assert.Len(t, resp.Results, 2)
}

func TestScanRejectsEmptyRequest(t *testing.T) {
	uc := newUseCase(&mockFetcher{}, &mockScanner{}, testScanConfig())

	_, err := uc.Execute(context.Background(), ScanCommand{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ScanCommand{Sources: []string{"  ", ""}, Text: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestScanRejectsWhenNothingGathered(t *testing.T) {
	fetcher := &mockFetcher{fn: func(_ context.Context, urls []string) []fetch.SourceResult {
		results := make([]fetch.SourceResult, len(urls))
		for i, u := range urls {
			results[i] = fetch.SourceResult{URL: u, Err: fmt.Errorf("boom")}
		}
		return results
	}}
	uc := newUseCase(fetcher, &mockScanner{}, testScanConfig())

	_, err := uc.Execute(context.Background(), ScanCommand{Sources: []string{"https://dead.example.com/sub"}})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestScanMixesSourcesAndText(t *testing.T) {
	var fetchedURLs []string
	fetcher := &mockFetcher{fn: func(_ context.Context, urls []string) []fetch.SourceResult {
		fetchedURLs = urls
		return []fetch.SourceResult{
			{URL: urls[0], Body: "vless://u@from-url.example.com:443#url"},
		}
	}}
	scanner := &mockScanner{}
	uc := newUseCase(fetcher, scanner, testScanConfig())

	resp, err := uc.Execute(context.Background(), ScanCommand{
		Sources: []string{
			"https://provider.example.com/sub",
			"trojan://pw@inline.example.com:443#inline",
		},
		Text: "vless://u@from-text.example.com:443#text",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://provider.example.com/sub"}, fetchedURLs)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 3, resp.Reachable)
}

func TestScanPartialSourceFailureTolerated(t *testing.T) {
	fetcher := &mockFetcher{fn: func(_ context.Context, urls []string) []fetch.SourceResult {
		return []fetch.SourceResult{
			{URL: urls[0], Body: "vless://u@ok.example.com:443#ok"},
			{URL: urls[1], Err: fmt.Errorf("status 503")},
		}
	}}
	uc := newUseCase(fetcher, &mockScanner{}, testScanConfig())

	resp, err := uc.Execute(context.Background(), ScanCommand{
		Sources: []string{"https://a.example.com/sub", "https://b.example.com/sub"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestScanEmptyParseStillSucceeds(t *testing.T) {
	uc := newUseCase(&mockFetcher{}, &mockScanner{}, testScanConfig())

	resp, err := uc.Execute(context.Background(), ScanCommand{Text: "nothing here resembles a proxy"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 0, resp.Reachable)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}
