package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonar/internal/application/scan/dto"
	"sonar/internal/application/scan/usecases"
	"sonar/internal/domain/descriptor"
	"sonar/internal/infrastructure/fetch"
	"sonar/internal/interfaces/http/handlers/testutil"

	sharedconfig "sonar/internal/shared/config"
)

type stubFetcher struct{}

func (stubFetcher) FetchAll(_ context.Context, urls []string) []fetch.SourceResult {
	return make([]fetch.SourceResult, len(urls))
}

type stubScanner struct{}

func (stubScanner) Scan(_ context.Context, list []descriptor.Descriptor, _ time.Duration, _ int) ([]descriptor.ScanResult, error) {
	results := make([]descriptor.ScanResult, len(list))
	for i, d := range list {
		results[i] = descriptor.ScanResult{
			Descriptor: d,
			Outcome:    descriptor.Outcome{OK: true, ElapsedMS: int64(10 * (i + 1))},
		}
	}
	return results, nil
}

func newTestHandler() *Handler {
	uc := usecases.NewScanUseCase(
		stubFetcher{},
		stubScanner{},
		sharedconfig.ScanConfig{DefaultTimeoutMS: 3000, DefaultConcurrency: 25, MaxResults: 500},
		testutil.NewMockLogger(),
	)
	return NewHandler(uc)
}

func TestScanHandlerSuccess(t *testing.T) {
	h := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/scan", dto.ScanRequest{
		Text: "vless://u@a.example.com:443#A\ntrojan://pw@b.example.com:443#B",
	})
	h.Scan(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data dto.ScanResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, 2, data.Reachable)
	require.Len(t, data.Results, 2)
	assert.Equal(t, "a.example.com", data.Results[0].Host)
	assert.LessOrEqual(t, data.Results[0].ElapsedMS, data.Results[1].ElapsedMS)
}

func TestScanHandlerMalformedBody(t *testing.T) {
	h := newTestHandler()

	c, w := testutil.NewTestContextWithRawBody(http.MethodPost, "/api/scan", "{not json")
	h.Scan(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "bad_request", resp.Error.Type)
}

func TestScanHandlerEmptyRequest(t *testing.T) {
	h := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/scan", dto.ScanRequest{})
	h.Scan(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestScanHandlerRejectsBlankSource(t *testing.T) {
	h := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/scan", dto.ScanRequest{
		Sources: []string{"https://a.example.com/sub", ""},
	})
	h.Scan(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestScanHandlerRejectsTooManySources(t *testing.T) {
	h := newTestHandler()

	sources := make([]string, 65)
	for i := range sources {
		sources[i] = "vless://u@a.example.com:443#x"
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/scan", dto.ScanRequest{Sources: sources})
	h.Scan(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
