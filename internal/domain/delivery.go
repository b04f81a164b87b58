package domain

import "time"

type DeliveryState struct {
	ID          int64     `db:"id"`
	Destination string    `db:"destination"`
	PostDate    time.Time `db:"post_date"`
	Title       string    `db:"title"`
	PageURL     string    `db:"page_url"`
	DeliveredAt time.Time `db:"delivered_at"`
}

// PostedOn reports whether the state already covers the given calendar date.
func (s *DeliveryState) PostedOn(date time.Time) bool {
	if s == nil || s.PostDate.IsZero() {
		return false
	}
	y1, m1, d1 := s.PostDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DeliveryStats holds statistics about a delivery run.
type DeliveryStats struct {
	Date          time.Time
	Destinations  int
	Published     int
	Skipped       int
	Errors        int
	ImageFallback bool
	Duration      time.Duration
}
