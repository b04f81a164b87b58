package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"apod_poster/internal/domain"
)

type DeliveryStore struct {
	db *sqlx.DB
}

func NewDeliveryStore(db *sqlx.DB) *DeliveryStore {
	return &DeliveryStore{db: db}
}

// Last returns the most recent delivery for destination. A destination that
// never received a post gets an empty state.
func (s *DeliveryStore) Last(ctx context.Context, destination string) (*domain.DeliveryState, error) {
	var state domain.DeliveryState
	query := `
		SELECT id, destination, post_date, title, page_url, delivered_at
		FROM deliveries
		WHERE destination = $1
		ORDER BY post_date DESC, delivered_at DESC
		LIMIT 1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, destination)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.DeliveryState{Destination: destination}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Record stores a delivery. Delivering the same date to the same destination
// again refreshes the row instead of adding one.
func (s *DeliveryStore) Record(ctx context.Context, state *domain.DeliveryState) error {
	query := `
		INSERT INTO deliveries (destination, post_date, title, page_url, delivered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (destination, post_date) DO UPDATE SET
			title = EXCLUDED.title,
			page_url = EXCLUDED.page_url,
			delivered_at = EXCLUDED.delivered_at
		RETURNING id`

	return sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state.ID, query,
		state.Destination,
		state.PostDate.Format("2006-01-02"),
		state.Title,
		state.PageURL,
		state.DeliveredAt,
	)
}
