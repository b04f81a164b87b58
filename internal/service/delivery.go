package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"apod_poster/internal/domain"
	"apod_poster/internal/metrics"
)

var ErrNoDestinations = errors.New("no destinations configured")

type DeliveryConfig struct {
	Destinations   []string
	SkipDuplicates bool
}

// DeliveryService hands rendered posts to the publisher and remembers the
// last posted date per destination.
type DeliveryService struct {
	renderer  Renderer
	store     DeliveryStore
	txManager TransactionManager
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	config    DeliveryConfig
}

func NewDeliveryService(
	renderer Renderer,
	store DeliveryStore,
	txManager TransactionManager,
	publisher Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg DeliveryConfig,
) *DeliveryService {
	return &DeliveryService{
		renderer:  renderer,
		store:     store,
		txManager: txManager,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "delivery"),
		config:    cfg,
	}
}

// Run delivers to the configured destinations. It is the scheduler entry point.
func (s *DeliveryService) Run(ctx context.Context) (*domain.DeliveryStats, error) {
	return s.Deliver(ctx, s.config.Destinations, false)
}

// Deliver renders the post once and publishes it to each destination.
// Destinations that already received a post for the same date are skipped
// unless force is set.
func (s *DeliveryService) Deliver(ctx context.Context, destinations []string, force bool) (*domain.DeliveryStats, error) {
	start := time.Now()
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}

	post, err := s.renderer.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render post: %w", err)
	}

	stats := &domain.DeliveryStats{
		Date:          post.Date,
		Destinations:  len(destinations),
		ImageFallback: !post.HasMedia(),
	}

	s.logger.Info("starting delivery",
		"date", post.Date.Format(time.DateOnly),
		"destinations", len(destinations),
		"force", force,
	)

	for _, dest := range destinations {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		delivered, err := s.deliverOne(ctx, dest, post, force)
		switch {
		case err != nil:
			s.logger.Error("delivery failed", "destination", dest, "error", err)
			s.metrics.Delivery(metrics.DeliveryFailed)
			stats.Errors++
		case delivered:
			s.metrics.Delivery(metrics.DeliveryPublished)
			stats.Published++
		default:
			s.logger.Info("already posted, skipping", "destination", dest, "date", post.Date.Format(time.DateOnly))
			s.metrics.Delivery(metrics.DeliverySkipped)
			stats.Skipped++
		}
	}

	stats.Duration = time.Since(start)

	s.logger.Info("delivery completed",
		"published", stats.Published,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"image_fallback", stats.ImageFallback,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *DeliveryService) deliverOne(ctx context.Context, destination string, post *domain.RenderedPost, force bool) (bool, error) {
	if s.config.SkipDuplicates && !force {
		last, err := s.store.Last(ctx, destination)
		if err != nil {
			return false, fmt.Errorf("load delivery state: %w", err)
		}
		if last.PostedOn(post.Date) {
			return false, nil
		}
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		state := &domain.DeliveryState{
			Destination: destination,
			PostDate:    post.Date,
			Title:       post.Title,
			PageURL:     post.PageURL,
			DeliveredAt: time.Now().UTC(),
		}
		if err := s.store.Record(txCtx, state); err != nil {
			return fmt.Errorf("record delivery: %w", err)
		}
		if err := s.publisher.Publish(txCtx, destination, post); err != nil {
			return fmt.Errorf("publish post: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
