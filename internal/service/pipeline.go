package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"apod_poster/internal/domain"
	"apod_poster/internal/metrics"
	"apod_poster/internal/render"
)

type PipelineConfig struct {
	PageURL        string
	Location       *time.Location
	LinkLabel      string
	PhotoMaxBytes  int
	PhotoMaxAspect float64
}

// PipelineService runs fetch, extract, image selection, normalization and
// caption rendering for one post. Runs share no state.
type PipelineService struct {
	fetcher    Fetcher
	extractor  Extractor
	resolver   ImageResolver
	normalizer ImageNormalizer
	captions   CaptionBuilder
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     *slog.Logger
	config     PipelineConfig
}

func NewPipelineService(
	fetcher Fetcher,
	extractor Extractor,
	resolver ImageResolver,
	normalizer ImageNormalizer,
	captions CaptionBuilder,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg PipelineConfig,
) *PipelineService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PipelineService{
		fetcher:    fetcher,
		extractor:  extractor,
		resolver:   resolver,
		normalizer: normalizer,
		captions:   captions,
		metrics:    m,
		now:        time.Now,
		logger:     logger.With("component", "pipeline", "image_policy", resolver.Policy()),
		config:     cfg,
	}
}

// WithClock replaces the clock that provides the run date.
func (s *PipelineService) WithClock(now func() time.Time) *PipelineService {
	s.now = now
	return s
}

// Render produces today's post. Fetch and extraction failures are returned;
// image problems only downgrade the post to text.
func (s *PipelineService) Render(ctx context.Context) (*domain.RenderedPost, error) {
	start := time.Now()
	runDate := s.now().In(s.config.Location)

	doc, err := s.fetcher.Fetch(ctx, s.config.PageURL)
	if err != nil {
		s.metrics.ObserveRun(metrics.OutcomeFetchError, time.Since(start))
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	record, err := s.extractor.Extract(doc, runDate)
	if err != nil {
		s.metrics.ObserveRun(metrics.OutcomeExtractionError, time.Since(start))
		return nil, fmt.Errorf("extract record: %w", err)
	}

	s.logger.Info("extracted record",
		"date", record.Date.Format(time.DateOnly),
		"title", record.Title,
		"candidates", len(record.ImageCandidates),
		"sentences", len(record.ExplanationFull),
	)

	record, media := s.attachImage(ctx, record)

	blocks := s.captions.Build(record, media != nil)
	post := render.Assemble(record, blocks, media, render.Options{
		Dialect:        s.captions.Dialect(),
		LinkLabel:      s.config.LinkLabel,
		PhotoMaxBytes:  s.config.PhotoMaxBytes,
		PhotoMaxAspect: s.config.PhotoMaxAspect,
	})

	s.metrics.ObserveRun(metrics.OutcomeSuccess, time.Since(start))
	s.logger.Info("rendered post",
		"date", post.Date.Format(time.DateOnly),
		"blocks", len(post.CaptionBlocks),
		"media", post.HasMedia(),
		"duration", time.Since(start),
	)

	return &post, nil
}

func (s *PipelineService) attachImage(ctx context.Context, record domain.ApodRecord) (domain.ApodRecord, *domain.MediaPayload) {
	if len(record.ImageCandidates) == 0 {
		s.logger.Warn("no image candidates, posting text only", "date", record.Date.Format(time.DateOnly))
		s.metrics.ImageFallback(metrics.FallbackNoCandidates)
		return record, nil
	}

	selected, err := s.resolver.Resolve(ctx, record.ImageCandidates)
	if err != nil || selected == nil {
		s.logger.Warn("image selection failed, posting text only", "error", err)
		s.metrics.ImageFallback(metrics.FallbackResolveFailed)
		return record, nil
	}

	record = record.WithSelectedImage(selected)
	if record.SelectedImage == nil {
		s.logger.Warn("resolver returned an unknown candidate", "url", selected.URL)
		s.metrics.ImageFallback(metrics.FallbackResolveFailed)
		return record, nil
	}

	media, err := s.normalizer.Normalize(ctx, *record.SelectedImage, record.Date)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, domain.ErrImageUnavailable) {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "image normalization failed, posting text only",
			"url", record.SelectedImage.URL,
			"error", err,
		)
		s.metrics.ImageFallback(metrics.FallbackNormalizeFailed)
		return record, nil
	}

	return record, media
}
