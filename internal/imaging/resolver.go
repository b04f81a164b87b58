// Package imaging selects the day's image among the extracted candidates and
// normalizes its bytes to what the messaging platform accepts.
package imaging

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"apod_poster/internal/domain"
)

const (
	PolicyStructural = "structural"
	PolicySizeProbe  = "size_probe"

	fullResolutionBonus = 10.0
	lengthBonusDivisor  = 200.0
)

// StructuralScore rates a candidate URL: a path segment named "image" marks
// the full-resolution directory, and longer URLs get a bonus capped at 1.0
// that only breaks ties.
func StructuralScore(rawURL string) float64 {
	score := 0.0
	if u, err := url.Parse(rawURL); err == nil {
		for _, seg := range strings.Split(u.Path, "/") {
			if strings.EqualFold(seg, "image") {
				score += fullResolutionBonus
				break
			}
		}
	}
	return score + math.Min(float64(len(rawURL))/lengthBonusDivisor, 1.0)
}

// StructuralResolver picks the highest StructuralScore without touching the network.
type StructuralResolver struct{}

func NewStructuralResolver() *StructuralResolver {
	return &StructuralResolver{}
}

func (r *StructuralResolver) Policy() string {
	return PolicyStructural
}

func (r *StructuralResolver) Resolve(_ context.Context, candidates []domain.ImageCandidate) (*domain.ImageCandidate, error) {
	var best *domain.ImageCandidate
	bestScore := -1.0
	for i := range candidates {
		score := StructuralScore(candidates[i].URL)
		if score > bestScore {
			c := candidates[i]
			c.StructuralScore = score
			best, bestScore = &c, score
		}
	}
	return best, nil
}

// ProbeConfig holds size-probe configuration.
type ProbeConfig struct {
	Timeout     time.Duration
	Concurrency int
	UserAgent   string
}

// SizeProbeResolver issues a HEAD request per candidate and picks the
// largest declared Content-Length.
type SizeProbeResolver struct {
	httpClient  *http.Client
	concurrency int
	userAgent   string
	logger      *slog.Logger
}

func NewSizeProbeResolver(cfg ProbeConfig, logger *slog.Logger) *SizeProbeResolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &SizeProbeResolver{
		httpClient:  &http.Client{Timeout: timeout},
		concurrency: concurrency,
		userAgent:   cfg.UserAgent,
		logger:      logger.With("component", "resolver", "policy", PolicySizeProbe),
	}
}

func (r *SizeProbeResolver) Policy() string {
	return PolicySizeProbe
}

func (r *SizeProbeResolver) Resolve(ctx context.Context, candidates []domain.ImageCandidate) (*domain.ImageCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	sizes := make([]int64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range candidates {
		i := i
		g.Go(func() error {
			size, err := r.probe(gctx, candidates[i].URL)
			if err != nil {
				r.logger.Debug("size probe failed", "url", candidates[i].URL, "error", err)
				sizes[i] = -1
				return nil
			}
			sizes[i] = size
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("probe sizes: %w", err)
	}

	var best *domain.ImageCandidate
	var bestSize int64
	for i, size := range sizes {
		if size > bestSize {
			c := candidates[i]
			c.ByteSize = size
			best, bestSize = &c, size
		}
	}
	if best == nil {
		r.logger.Warn("no candidate reported a size", "candidates", len(candidates))
	}
	return best, nil
}

func (r *SizeProbeResolver) probe(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("content length unknown")
	}
	return resp.ContentLength, nil
}
