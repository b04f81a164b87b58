package domain

import "time"

type Dialect string

const (
	DialectMarkdownV2 Dialect = "markdown_v2"
	DialectHTML       Dialect = "html"
)

type BlockKind string

const (
	BlockPhotoCaption BlockKind = "photo_caption"
	BlockMessage      BlockKind = "message"
)

type CaptionBlock struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

type MediaPayload struct {
	Data       []byte `json:"data"`
	MIMEType   string `json:"mime_type"`
	Filename   string `json:"filename"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SourceURL  string `json:"source_url"`
	AsDocument bool   `json:"as_document"` // too large or too elongated for an inline photo
}

type LinkButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RenderedPost is everything a sender needs to deliver one day's post.
type RenderedPost struct {
	Date          time.Time      `json:"date"`
	Title         string         `json:"title"`
	PageURL       string         `json:"page_url"`
	Dialect       Dialect        `json:"dialect"`
	CaptionBlocks []CaptionBlock `json:"caption_blocks"`
	Media         *MediaPayload  `json:"media,omitempty"`
	LinkButtons   []LinkButton   `json:"link_buttons"`
}

func (p *RenderedPost) HasMedia() bool {
	return p.Media != nil
}
