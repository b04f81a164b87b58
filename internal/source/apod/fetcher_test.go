package apod

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apod_poster/internal/domain"
)

func newTestFetcher(maxBytes int64) *Fetcher {
	return NewFetcher(FetcherConfig{
		Timeout:   2 * time.Second,
		UserAgent: "ApodPoster/test",
		MaxBytes:  maxBytes,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ApodPoster/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html><body>hi</body></html>")
	}))
	defer srv.Close()

	doc, err := newTestFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, doc.URL)
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)
	assert.Equal(t, "<html><body>hi</body></html>", string(doc.Body))
	assert.False(t, doc.FetchedAt.IsZero())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(0).Fetch(context.Background(), srv.URL)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, srv.URL, fetchErr.URL)
}

func TestFetch_OversizedBodyIsRejected(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "declared length",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, strings.Repeat("x", 1000))
			},
		},
		{
			name: "chunked",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				for i := 0; i < 10; i++ {
					_, _ = io.WriteString(w, strings.Repeat("x", 100))
					w.(http.Flusher).Flush()
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			doc, err := newTestFetcher(100).Fetch(context.Background(), srv.URL)

			assert.Nil(t, doc)
			var fetchErr *domain.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "page too large")
		})
	}
}

func TestFetch_BodyAtLimitIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 100))
	}))
	defer srv.Close()

	doc, err := newTestFetcher(100).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, doc.Body, 100)
}

func TestFetch_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestFetcher(0).Fetch(context.Background(), url)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(0).Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
