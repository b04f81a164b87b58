package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"apod_poster/internal/caption"
	"apod_poster/internal/config"
	"apod_poster/internal/domain"
	"apod_poster/internal/imaging"
	"apod_poster/internal/metrics"
	"apod_poster/internal/publisher"
	"apod_poster/internal/service"
	"apod_poster/internal/source/apod"
	"apod_poster/internal/storage/postgres"
)

type app struct {
	db        *sqlx.DB
	publisher *publisher.RabbitMQ
	delivery  *service.DeliveryService
	logger    *slog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*app, error) {
	pipeline, err := newPipeline(cfg, m, logger)
	if err != nil {
		return nil, err
	}

	db, err := postgres.Open(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	delivery := service.NewDeliveryService(
		pipeline,
		postgres.NewDeliveryStore(db),
		postgres.NewTransactionManager(db),
		rabbitMQ,
		m,
		logger,
		service.DeliveryConfig{
			Destinations:   cfg.Delivery.Destinations,
			SkipDuplicates: cfg.Delivery.SkipsDuplicates(),
		},
	)

	return &app{db: db, publisher: rabbitMQ, delivery: delivery, logger: logger}, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("close publisher", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}

// newPipeline wires the render pipeline. It needs neither the database nor
// the broker, so preview can run without them.
func newPipeline(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*service.PipelineService, error) {
	sourceLoc := config.Location(cfg.Source.Timezone)

	fetcher := apod.NewFetcher(apod.FetcherConfig{
		Timeout:   cfg.Source.Timeout,
		UserAgent: cfg.Source.UserAgent,
		MaxBytes:  cfg.Source.MaxBytes,
	}, logger)

	extractor, err := apod.NewExtractor(apod.ExtractorConfig{
		BaseURL:        cfg.Source.BaseURL,
		DefaultTitle:   cfg.Extract.DefaultTitle,
		DefaultCredit:  cfg.Extract.DefaultCredit,
		ShortSentences: cfg.Extract.ShortSentences,
		Location:       sourceLoc,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	resolver := newResolver(cfg, logger)
	logger.Info("image selection policy", "policy", resolver.Policy())

	normalizer := imaging.NewNormalizer(imaging.NormalizerConfig{
		Timeout:          cfg.Image.FetchTimeout,
		UserAgent:        cfg.Source.UserAgent,
		MaxDownloadBytes: cfg.Image.MaxDownloadBytes,
		MaxSide:          cfg.Image.MaxSide,
		MaxPixels:        cfg.Image.MaxPixels,
		Quality:          cfg.Image.JPEGQuality,
		AcceptedMIME:     cfg.Image.AcceptedMIME,
	}, logger)

	captions, err := caption.NewBuilder(caption.Config{
		Dialect:    domain.Dialect(cfg.Caption.Dialect),
		Overflow:   caption.Overflow(cfg.Caption.Overflow),
		PhotoCap:   cfg.Caption.PhotoCap,
		MessageCap: cfg.Caption.MessageCap,
		Heading:    cfg.Caption.Heading,
		DateLayout: cfg.Caption.DateLayout,
		LinkLabel:  cfg.Caption.LinkLabel,
		Reserved:   cfg.Caption.Reserved,
	})
	if err != nil {
		return nil, fmt.Errorf("create caption builder: %w", err)
	}

	return service.NewPipelineService(
		fetcher,
		extractor,
		resolver,
		normalizer,
		captions,
		m,
		logger,
		service.PipelineConfig{
			PageURL:        cfg.Source.PageURL,
			Location:       sourceLoc,
			LinkLabel:      cfg.Caption.LinkLabel,
			PhotoMaxBytes:  cfg.Image.PhotoMaxBytes,
			PhotoMaxAspect: cfg.Image.PhotoMaxAspect,
		},
	), nil
}

func newResolver(cfg *config.Config, logger *slog.Logger) service.ImageResolver {
	if cfg.Image.Selection == imaging.PolicySizeProbe {
		return imaging.NewSizeProbeResolver(imaging.ProbeConfig{
			Timeout:     cfg.Image.ProbeTimeout,
			Concurrency: cfg.Image.ProbeConcurrency,
			UserAgent:   cfg.Source.UserAgent,
		}, logger)
	}
	return imaging.NewStructuralResolver()
}
