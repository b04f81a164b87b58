package domain

import (
	"strings"
	"time"
)

type CandidateKind string

const (
	CandidateAnchor CandidateKind = "anchor"
	CandidateImgTag CandidateKind = "img-tag"
)

type ImageCandidate struct {
	URL             string        `json:"url"`
	Kind            CandidateKind `json:"kind"`
	StructuralScore float64       `json:"structural_score"`
	ByteSize        int64         `json:"byte_size,omitempty"` // 0 when never probed
}

// ApodRecord is one day's entry as extracted from the source page.
// It is a value: use WithSelectedImage rather than assigning fields after extraction.
type ApodRecord struct {
	Date             time.Time
	Title            string
	Credit           string
	ExplanationFull  []string
	ExplanationShort []string
	PageURL          string
	ImageCandidates  []ImageCandidate
	SelectedImage    *ImageCandidate
}

func (r ApodRecord) FullExplanation() string {
	return strings.Join(r.ExplanationFull, " ")
}

func (r ApodRecord) ShortExplanation() string {
	return strings.Join(r.ExplanationShort, " ")
}

// WithSelectedImage returns a copy of r with the selection set. A candidate
// whose URL is not among r.ImageCandidates is ignored.
func (r ApodRecord) WithSelectedImage(c *ImageCandidate) ApodRecord {
	r.ImageCandidates = append([]ImageCandidate(nil), r.ImageCandidates...)
	r.SelectedImage = nil
	if c == nil {
		return r
	}
	for _, known := range r.ImageCandidates {
		if known.URL == c.URL {
			selected := *c
			r.SelectedImage = &selected
			break
		}
	}
	return r
}

// Document is the raw page as returned by the fetcher.
type Document struct {
	URL         string
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}
