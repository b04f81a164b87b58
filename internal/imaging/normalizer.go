package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"slices"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"apod_poster/internal/domain"
)

const outputMIME = "image/jpeg"

// NormalizerConfig holds the platform media constraints.
type NormalizerConfig struct {
	Timeout          time.Duration
	UserAgent        string
	MaxDownloadBytes int64
	MaxSide          int
	MaxPixels        int
	Quality          int
	AcceptedMIME     []string
}

// Normalizer downloads the selected image and re-encodes it as an RGB JPEG
// whose longer side does not exceed MaxSide. All failures wrap
// domain.ErrImageUnavailable.
type Normalizer struct {
	httpClient *http.Client
	cfg        NormalizerConfig
	logger     *slog.Logger
}

func NewNormalizer(cfg NormalizerConfig, logger *slog.Logger) *Normalizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = 95
	}
	return &Normalizer{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger.With("component", "normalizer"),
	}
}

func (n *Normalizer) Normalize(ctx context.Context, candidate domain.ImageCandidate, date time.Time) (*domain.MediaPayload, error) {
	data, err := n.download(ctx, candidate.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageUnavailable, err)
	}

	img, err := n.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageUnavailable, err)
	}

	origW, origH := img.Bounds().Dx(), img.Bounds().Dy()
	img = fitSide(img, n.cfg.MaxSide)
	img = flatten(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: n.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("%w: encode jpeg: %w", domain.ErrImageUnavailable, err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	n.logger.Debug("normalized image",
		"url", candidate.URL,
		"original", fmt.Sprintf("%dx%d", origW, origH),
		"output", fmt.Sprintf("%dx%d", w, h),
		"bytes", buf.Len(),
	)

	return &domain.MediaPayload{
		Data:      buf.Bytes(),
		MIMEType:  outputMIME,
		Filename:  Filename(date),
		Width:     w,
		Height:    h,
		SourceURL: candidate.URL,
	}, nil
}

// Filename is the name used when the image is delivered as a document.
func Filename(date time.Time) string {
	return "apod-" + date.Format("2006-01-02") + ".jpg"
}

func (n *Normalizer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	if n.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", n.cfg.UserAgent)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !n.acceptsType(contentType) {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	limit := n.cfg.MaxDownloadBytes
	if limit > 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("image too large: %d > %d bytes", resp.ContentLength, limit)
	}

	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("image too large: over %d bytes", limit)
	}
	return data, nil
}

func (n *Normalizer) acceptsType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return false
	}
	if len(n.cfg.AcceptedMIME) == 0 {
		return true
	}
	return slices.Contains(n.cfg.AcceptedMIME, mediaType)
}

func (n *Normalizer) decode(data []byte) (image.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if n.cfg.MaxPixels > 0 && cfg.Width*cfg.Height > n.cfg.MaxPixels {
		return nil, fmt.Errorf("too many pixels: %dx%d", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

// fitSide scales img down proportionally so its longer side equals maxSide.
// Images already within the limit are returned unchanged.
func fitSide(img image.Image, maxSide int) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	longer := max(w, h)
	if maxSide <= 0 || longer <= maxSide {
		return img
	}

	newW, newH := maxSide, maxSide
	if w >= h {
		newH = max(1, int(float64(h)*float64(maxSide)/float64(w)+0.5))
	} else {
		newW = max(1, int(float64(w)*float64(maxSide)/float64(h)+0.5))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// flatten composites img over an opaque white canvas so the JPEG encoder
// sees three colour channels and no alpha.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
