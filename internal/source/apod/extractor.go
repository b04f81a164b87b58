package apod

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"apod_poster/internal/domain"
)

// ExtractorConfig holds extraction defaults.
type ExtractorConfig struct {
	BaseURL        string
	DefaultTitle   string
	DefaultCredit  string
	ShortSentences int
	Location       *time.Location
}

// Extractor maps a fetched page to an ApodRecord. Each field comes from an
// independent rule; a rule that finds nothing leaves its default in place.
type Extractor struct {
	base   *url.URL
	cfg    ExtractorConfig
	rules  []rule
	logger *slog.Logger
}

func NewExtractor(cfg ExtractorConfig, logger *slog.Logger) (*Extractor, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", cfg.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	e := &Extractor{
		base:   base,
		cfg:    cfg,
		logger: logger.With("component", "extractor"),
	}
	e.rules = []rule{
		{name: "date", apply: e.extractDate},
		{name: "title", apply: extractTitle},
		{name: "credit", apply: extractCredit},
		{name: "explanation", apply: extractExplanation},
		{name: "images", apply: e.extractImages},
	}
	return e, nil
}

// Extract builds a record from doc. runDate stands in when the page carries
// no readable publication date.
func (e *Extractor) Extract(doc *domain.Document, runDate time.Time) (domain.ApodRecord, error) {
	if err := checkMarkup(doc); err != nil {
		return domain.ApodRecord{}, err
	}

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return domain.ApodRecord{}, &domain.ExtractionError{URL: doc.URL, Reason: "parse html", Err: err}
	}

	d := &draft{date: runDate}
	for _, r := range e.rules {
		r.apply(parsed, d)
		e.logger.Debug("applied rule", "rule", r.name)
	}

	if d.title == "" && len(d.explanation) == 0 {
		return domain.ApodRecord{}, &domain.ExtractionError{
			URL:    doc.URL,
			Reason: "neither title nor explanation found, page structure changed",
		}
	}

	if d.title == "" {
		e.logger.Warn("title not found, using default", "url", doc.URL)
		d.title = e.cfg.DefaultTitle
	}
	if d.credit == "" {
		d.credit = e.cfg.DefaultCredit
	}
	if len(d.explanation) == 0 {
		e.logger.Warn("explanation not found", "url", doc.URL)
	}

	date := calendarDate(d.date, e.cfg.Location)

	return domain.ApodRecord{
		Date:             date,
		Title:            d.title,
		Credit:           d.credit,
		ExplanationFull:  d.explanation,
		ExplanationShort: shortSentences(d.explanation, e.cfg.ShortSentences),
		PageURL:          PageURL(e.base.String(), date),
		ImageCandidates:  d.candidates,
	}, nil
}

// PageURL is the permalink of the entry published on date.
func PageURL(base string, date time.Time) string {
	return strings.TrimRight(base, "/") + "/ap" + date.Format("060102") + ".html"
}

func checkMarkup(doc *domain.Document) error {
	if doc == nil || len(bytes.TrimSpace(doc.Body)) == 0 {
		url := ""
		if doc != nil {
			url = doc.URL
		}
		return &domain.ExtractionError{URL: url, Reason: "empty document"}
	}

	if doc.ContentType != "" {
		mediaType, _, err := mime.ParseMediaType(doc.ContentType)
		if err == nil && mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return &domain.ExtractionError{URL: doc.URL, Reason: "unexpected content type " + mediaType}
		}
	}

	if sniffed := http.DetectContentType(doc.Body); !strings.HasPrefix(sniffed, "text/") {
		return &domain.ExtractionError{URL: doc.URL, Reason: "payload is not markup: " + sniffed}
	}
	return nil
}

func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
