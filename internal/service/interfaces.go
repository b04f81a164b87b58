package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"apod_poster/internal/domain"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Document, error)
}

type Extractor interface {
	Extract(doc *domain.Document, runDate time.Time) (domain.ApodRecord, error)
}

type ImageResolver interface {
	Policy() string
	Resolve(ctx context.Context, candidates []domain.ImageCandidate) (*domain.ImageCandidate, error)
}

type ImageNormalizer interface {
	Normalize(ctx context.Context, candidate domain.ImageCandidate, date time.Time) (*domain.MediaPayload, error)
}

type CaptionBuilder interface {
	Dialect() domain.Dialect
	Build(record domain.ApodRecord, withImage bool) []domain.CaptionBlock
}

type Renderer interface {
	Render(ctx context.Context) (*domain.RenderedPost, error)
}

type DeliveryStore interface {
	Last(ctx context.Context, destination string) (*domain.DeliveryState, error)
	Record(ctx context.Context, state *domain.DeliveryState) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, destination string, post *domain.RenderedPost) error
	Close() error
}
