package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"apod_poster/internal/config"
	"apod_poster/internal/domain"
	"apod_poster/internal/metrics"
	"apod_poster/internal/scheduler"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apod-poster",
		Short: "Render the Astronomy Picture of the Day and hand it to the post queue",
		Long: `apod-poster fetches the daily APOD page, picks and normalizes the image,
builds platform-safe captions and publishes the result to RabbitMQ for the
messaging sender.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	cmd.AddCommand(newRunCmd(), newTodayCmd(), newPreviewCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Post once a day at the configured time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			m := metrics.New(reg)
			startMetrics(ctx, cfg, reg, logger)

			a, err := newApp(ctx, cfg, m, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			hour, minute, _ := cfg.Schedule.Clock()
			sched := scheduler.NewScheduler(a.delivery, scheduler.Config{
				Hour:       hour,
				Minute:     minute,
				Location:   config.Location(cfg.Schedule.Timezone),
				RunTimeout: cfg.Schedule.RunTimeout,
				RunOnStart: cfg.Schedule.RunOnStart,
			}, logger)

			logger.Info("starting apod poster",
				"destinations", len(cfg.Delivery.Destinations),
				"image_policy", cfg.Image.Selection,
				"overflow", cfg.Caption.Overflow,
			)

			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scheduler: %w", err)
			}
			return nil
		},
	}
}

func newTodayCmd() *cobra.Command {
	var destinations []string
	var force bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Deliver today's post right away",
		Long: `Render today's post and publish it immediately.

Examples:
  apod-poster today                          # all configured destinations
  apod-poster today --destination 12345      # a single destination
  apod-poster today --force                  # ignore what was already posted`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg, metrics.New(prometheus.NewRegistry()), logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(destinations) == 0 {
				destinations = cfg.Delivery.Destinations
			}

			stats, err := a.delivery.Deliver(ctx, destinations, force)
			if err != nil {
				return fmt.Errorf("deliver: %w", err)
			}
			if stats.Errors > 0 {
				return fmt.Errorf("%d of %d deliveries failed", stats.Errors, stats.Destinations)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&destinations, "destination", nil, "destination id (repeatable, default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "publish even if the destination already has today's post")
	return cmd
}

// previewPost is the post without its image bytes.
type previewPost struct {
	Date          string                `json:"date"`
	Title         string                `json:"title"`
	PageURL       string                `json:"page_url"`
	Dialect       domain.Dialect        `json:"dialect"`
	CaptionBlocks []domain.CaptionBlock `json:"caption_blocks"`
	Media         *previewMedia         `json:"media,omitempty"`
	LinkButtons   []domain.LinkButton   `json:"link_buttons"`
}

type previewMedia struct {
	MIMEType   string `json:"mime_type"`
	Filename   string `json:"filename"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Bytes      int    `json:"bytes"`
	SourceURL  string `json:"source_url"`
	AsDocument bool   `json:"as_document"`
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render today's post to stdout without publishing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			pipeline, err := newPipeline(cfg, nil, logger)
			if err != nil {
				return err
			}

			post, err := pipeline.Render(cmd.Context())
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			out := previewPost{
				Date:          post.Date.Format("2006-01-02"),
				Title:         post.Title,
				PageURL:       post.PageURL,
				Dialect:       post.Dialect,
				CaptionBlocks: post.CaptionBlocks,
				LinkButtons:   post.LinkButtons,
			}
			if post.Media != nil {
				out.Media = &previewMedia{
					MIMEType:   post.Media.MIMEType,
					Filename:   post.Media.Filename,
					Width:      post.Media.Width,
					Height:     post.Media.Height,
					Bytes:      len(post.Media.Data),
					SourceURL:  post.Media.SourceURL,
					AsDocument: post.Media.AsDocument,
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(out)
		},
	}
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

func startMetrics(ctx context.Context, cfg *config.Config, reg *prometheus.Registry, logger *slog.Logger) {
	if cfg.Metrics.ListenAddr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, cfg.Metrics.ListenAddr, reg, logger); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()
}
