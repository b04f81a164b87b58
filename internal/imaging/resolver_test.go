package imaging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apod_poster/internal/domain"
)

func TestStructuralScore(t *testing.T) {
	full := StructuralScore("https://apod.nasa.gov/apod/image/2610/horse.jpg")
	thumb := StructuralScore("https://apod.nasa.gov/apod/calendar/S_261016.jpg")
	imagesDir := StructuralScore("https://apod.nasa.gov/apod/images/2610/horse.jpg")

	assert.Greater(t, full, 10.0)
	assert.Less(t, thumb, 1.01)
	assert.Less(t, imagesDir, 1.01, "only an exact segment named image counts")
	assert.Greater(t, StructuralScore("https://apod.nasa.gov/apod/IMAGE/x.jpg"), 10.0)
	assert.Equal(t, 1.0, StructuralScore("https://example.org/"+strings.Repeat("a", 400)))
}

func TestStructuralResolver_PrefersFullResolutionDirectory(t *testing.T) {
	r := NewStructuralResolver()
	candidates := []domain.ImageCandidate{
		{URL: "https://apod.nasa.gov/apod/calendar/a_very_long_thumbnail_name_that_is_longer_than_the_other_one.jpg", Kind: domain.CandidateImgTag},
		{URL: "https://apod.nasa.gov/apod/image/2610/h.jpg", Kind: domain.CandidateAnchor},
	}

	best, err := r.Resolve(context.Background(), candidates)
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, candidates[1].URL, best.URL)
	assert.Equal(t, PolicyStructural, r.Policy())
	assert.Zero(t, candidates[1].StructuralScore, "input must not be mutated")
}

func TestStructuralResolver_TieKeepsFirst(t *testing.T) {
	candidates := []domain.ImageCandidate{
		{URL: "https://apod.nasa.gov/apod/image/a.jpg"},
		{URL: "https://apod.nasa.gov/apod/image/b.jpg"},
	}

	best, err := NewStructuralResolver().Resolve(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates[0].URL, best.URL)
}

func TestStructuralResolver_Empty(t *testing.T) {
	best, err := NewStructuralResolver().Resolve(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, best)
}

func sizeServer(t *testing.T, sizes map[string]int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		size, ok := sizes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(size))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newProbe() *SizeProbeResolver {
	return NewSizeProbeResolver(ProbeConfig{Timeout: 2 * time.Second, Concurrency: 2}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSizeProbeResolver_PicksLargest(t *testing.T) {
	srv := sizeServer(t, map[string]int{"/small.jpg": 1000, "/large.jpg": 90000, "/mid.jpg": 5000})
	candidates := []domain.ImageCandidate{
		{URL: srv.URL + "/small.jpg"},
		{URL: srv.URL + "/large.jpg"},
		{URL: srv.URL + "/missing.jpg"},
		{URL: srv.URL + "/mid.jpg"},
	}

	r := newProbe()
	best, err := r.Resolve(context.Background(), candidates)
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, srv.URL+"/large.jpg", best.URL)
	assert.Equal(t, int64(90000), best.ByteSize)
	assert.Equal(t, PolicySizeProbe, r.Policy())
}

func TestSizeProbeResolver_TieKeepsFirst(t *testing.T) {
	srv := sizeServer(t, map[string]int{"/a.jpg": 700, "/b.jpg": 700})

	best, err := newProbe().Resolve(context.Background(), []domain.ImageCandidate{
		{URL: srv.URL + "/a.jpg"},
		{URL: srv.URL + "/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/a.jpg", best.URL)
}

func TestSizeProbeResolver_NoSizes(t *testing.T) {
	srv := sizeServer(t, map[string]int{})

	best, err := newProbe().Resolve(context.Background(), []domain.ImageCandidate{{URL: srv.URL + "/a.jpg"}})
	assert.NoError(t, err)
	assert.Nil(t, best)
}

func TestSizeProbeResolver_Cancelled(t *testing.T) {
	srv := sizeServer(t, map[string]int{"/a.jpg": 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProbe().Resolve(ctx, []domain.ImageCandidate{{URL: srv.URL + "/a.jpg"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStructuralResolver_ImageDirectoryBeatsLongThumbnail(t *testing.T) {
	candidates := []domain.ImageCandidate{
		{URL: "https://apod.nasa.gov/apod/thumb/ap261016_verylongdescriptivefilename_with_even_more_words_appended.jpg"},
		{URL: "https://apod.nasa.gov/apod/image/ap261016.jpg"},
	}

	best, err := NewStructuralResolver().Resolve(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates[1].URL, best.URL)
}
