package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	"sonar/internal/application/scan/dto"
	"sonar/internal/domain/descriptor"
	"sonar/internal/infrastructure/fetch"
	"sonar/internal/shared/errors"
	"sonar/internal/shared/id"
	"sonar/internal/shared/logger"
	"sonar/internal/shared/utils/logutil"

	sharedconfig "sonar/internal/shared/config"
)

// Request fields outside these bounds are clamped, not rejected.
const (
	minTimeoutMS   = 500
	maxTimeoutMS   = 10000
	minConcurrency = 1
	maxConcurrency = 100
)

// ScanCommand carries one scan request into the use case.
type ScanCommand struct {
	Sources     []string
	Text        string
	TimeoutMS   int
	Concurrency int
}

// SubscriptionFetcher downloads subscription bodies for the URLs in a scan.
type SubscriptionFetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetch.SourceResult
}

// DescriptorScanner probes a descriptor batch under a concurrency bound.
type DescriptorScanner interface {
	Scan(ctx context.Context, list []descriptor.Descriptor, timeout time.Duration, concurrency int) ([]descriptor.ScanResult, error)
}

// ScanUseCase gathers subscription content, parses it into descriptors,
// probes them, and ranks the reachable servers by latency.
type ScanUseCase struct {
	fetcher SubscriptionFetcher
	scanner DescriptorScanner
	cfg     sharedconfig.ScanConfig
	logger  logger.Interface
}

func NewScanUseCase(
	fetcher SubscriptionFetcher,
	scanner DescriptorScanner,
	cfg sharedconfig.ScanConfig,
	logger logger.Interface,
) *ScanUseCase {
	return &ScanUseCase{
		fetcher: fetcher,
		scanner: scanner,
		cfg:     cfg,
		logger:  logger,
	}
}

// Execute runs one scan end to end. Individual source failures are
// tolerated; the scan only fails when no content could be gathered at all
// or the probe stage cannot start.
func (uc *ScanUseCase) Execute(ctx context.Context, cmd ScanCommand) (*dto.ScanResponse, error) {
	startedAt := time.Now()
	log := uc.logger.With("scan_id", id.NewScanID())

	urls, inline := partitionSources(cmd.Sources)
	if len(urls) == 0 && len(inline) == 0 && strings.TrimSpace(cmd.Text) == "" {
		return nil, errors.NewValidationError("at least one source or text is required")
	}

	body, fetched, failed := uc.gather(ctx, urls, inline, cmd.Text)
	if strings.TrimSpace(body) == "" {
		log.Warnw("no subscription content gathered",
			"sources_fetched", fetched,
			"sources_failed", failed,
		)
		return nil, errors.NewValidationError("no subscription content could be gathered")
	}

	list := descriptor.Parse(body)
	timeoutMS := clampTimeout(cmd.TimeoutMS, uc.cfg.DefaultTimeoutMS)
	concurrency := clampConcurrency(cmd.Concurrency, uc.cfg.DefaultConcurrency)

	results, err := uc.scanner.Scan(ctx, list, time.Duration(timeoutMS)*time.Millisecond, concurrency)
	if err != nil {
		log.Errorw("scan failed to start", "error", err)
		return nil, errors.NewInternalError("failed to scan descriptors")
	}

	reachable := make([]descriptor.ScanResult, 0, len(results))
	for _, r := range results {
		if r.Outcome.OK {
			reachable = append(reachable, r)
		}
	}
	sort.SliceStable(reachable, func(i, j int) bool {
		return reachable[i].Outcome.ElapsedMS < reachable[j].Outcome.ElapsedMS
	})

	ranked := reachable
	if uc.cfg.MaxResults > 0 && len(ranked) > uc.cfg.MaxResults {
		ranked = ranked[:uc.cfg.MaxResults]
	}

	log.Infow("scan completed",
		"sources_fetched", fetched,
		"sources_failed", failed,
		"descriptors", len(list),
		"reachable", len(reachable),
		"timeout_ms", timeoutMS,
		"concurrency", concurrency,
		"elapsed_ms", time.Since(startedAt).Milliseconds(),
	)

	return &dto.ScanResponse{
		Total:     len(list),
		Reachable: len(reachable),
		TimeoutMS: timeoutMS,
		Results:   dto.FromScanResults(ranked),
	}, nil
}

// gather concatenates fetched subscription bodies with the inline sources
// and the request text. Failed fetches are skipped.
func (uc *ScanUseCase) gather(ctx context.Context, urls, inline []string, text string) (string, int, int) {
	var parts []string
	fetched, failed := 0, 0

	if len(urls) > 0 {
		for _, res := range uc.fetcher.FetchAll(ctx, urls) {
			if res.Err != nil {
				failed++
				uc.logger.Warnw("skipping unfetchable source",
					"url", logutil.TruncateForLog(res.URL, 120),
					"error", res.Err.Error(),
				)
				continue
			}
			fetched++
			parts = append(parts, res.Body)
		}
	}
	parts = append(parts, inline...)
	if text != "" {
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n"), fetched, failed
}

// partitionSources splits the request sources into URLs to fetch and
// inline descriptor text, dropping blank entries.
func partitionSources(sources []string) (urls, inline []string) {
	for _, src := range sources {
		src = strings.TrimSpace(src)
		switch {
		case src == "":
		case fetch.IsURL(src):
			urls = append(urls, src)
		default:
			inline = append(inline, src)
		}
	}
	return urls, inline
}

func clampTimeout(requested, fallback int) int {
	v := requested
	if v <= 0 {
		v = fallback
	}
	if v < minTimeoutMS {
		v = minTimeoutMS
	}
	if v > maxTimeoutMS {
		v = maxTimeoutMS
	}
	return v
}

func clampConcurrency(requested, fallback int) int {
	v := requested
	if v <= 0 {
		v = fallback
	}
	if v < minConcurrency {
		v = minConcurrency
	}
	if v > maxConcurrency {
		v = maxConcurrency
	}
	return v
}
