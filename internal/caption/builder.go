// Package caption renders an ApodRecord into escaped, length-bounded text
// blocks for the messaging platform.
package caption

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"apod_poster/internal/domain"
)

type Overflow string

const (
	// OverflowSplit sends the header as the photo caption and the full
	// explanation as a separate message when the caption would not fit.
	OverflowSplit Overflow = "split"
	// OverflowTruncate cuts the short explanation and appends an ellipsis.
	OverflowTruncate Overflow = "truncate"
)

const (
	ellipsis  = "…"
	separator = "\n\n"
)

type Config struct {
	Dialect    domain.Dialect
	Overflow   Overflow
	PhotoCap   int
	MessageCap int
	Heading    string
	DateLayout string
	LinkLabel  string
	Reserved   string
}

// Builder is safe for concurrent use; it holds no per-call state.
type Builder struct {
	cfg Config
	m   markup
}

func NewBuilder(cfg Config) (*Builder, error) {
	switch cfg.Dialect {
	case domain.DialectMarkdownV2, domain.DialectHTML:
	default:
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}
	switch cfg.Overflow {
	case OverflowSplit, OverflowTruncate:
	default:
		return nil, fmt.Errorf("unknown overflow strategy %q", cfg.Overflow)
	}
	if cfg.PhotoCap < 128 || cfg.MessageCap < 512 || cfg.MessageCap < cfg.PhotoCap {
		return nil, fmt.Errorf("invalid caps: photo %d, message %d", cfg.PhotoCap, cfg.MessageCap)
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = "02 January 2006"
	}
	return &Builder{cfg: cfg, m: newMarkup(cfg.Dialect, cfg.Reserved)}, nil
}

func (b *Builder) Dialect() domain.Dialect {
	return b.cfg.Dialect
}

func (b *Builder) Overflow() Overflow {
	return b.cfg.Overflow
}

// Build renders record. With an image the first block is a photo caption
// within PhotoCap; without one a single message block carries the header,
// the full explanation and the page link.
func (b *Builder) Build(record domain.ApodRecord, withImage bool) []domain.CaptionBlock {
	if !withImage {
		return []domain.CaptionBlock{{Kind: domain.BlockMessage, Text: b.textOnly(record)}}
	}

	limit := b.cfg.PhotoCap
	header := b.header(record, limit)
	short := record.ShortExplanation()
	if short == "" {
		return []domain.CaptionBlock{{Kind: domain.BlockPhotoCaption, Text: header}}
	}

	caption := header + separator + b.m.escape(short)
	if runeLen(caption) <= limit {
		return []domain.CaptionBlock{{Kind: domain.BlockPhotoCaption, Text: caption}}
	}

	if b.cfg.Overflow == OverflowTruncate {
		room := limit - runeLen(header) - runeLen(separator)
		return []domain.CaptionBlock{{
			Kind: domain.BlockPhotoCaption,
			Text: header + separator + b.fit(short, room),
		}}
	}

	return []domain.CaptionBlock{
		{Kind: domain.BlockPhotoCaption, Text: header},
		{Kind: domain.BlockMessage, Text: b.fit(record.FullExplanation(), b.cfg.MessageCap)},
	}
}

func (b *Builder) textOnly(record domain.ApodRecord) string {
	limit := b.cfg.MessageCap
	header := b.header(record, limit)
	link := b.m.link(b.m.escape(b.cfg.LinkLabel), record.PageURL)

	full := record.FullExplanation()
	room := limit - runeLen(header) - runeLen(link) - 2*runeLen(separator)
	if full == "" || room <= runeLen(ellipsis) {
		return header + separator + link
	}
	return header + separator + b.fit(full, room) + separator + link
}

// header renders heading, title and credit. Each part is bounded by a share
// of limit so the header alone always leaves room inside the cap.
func (b *Builder) header(record domain.ApodRecord, limit int) string {
	heading := b.cfg.Heading
	if !record.Date.IsZero() {
		heading += " – " + record.Date.Format(b.cfg.DateLayout)
	}

	return b.m.bold(b.fit(heading, limit/4-b.m.boldLen)) + separator +
		b.m.bold(b.fit(record.Title, limit/4-b.m.boldLen)) + "\n" +
		b.m.italic(b.fit("Image Credit: "+record.Credit, limit/5-b.m.italicLen))
}

// fit escapes raw and, if the result is longer than budget, cuts raw at a
// rune boundary so that the escaped prefix plus an ellipsis fits. Cutting
// happens before escaping so escape sequences and entities stay whole.
func (b *Builder) fit(raw string, budget int) string {
	escaped := b.m.escape(raw)
	if runeLen(escaped) <= budget {
		return escaped
	}

	room := budget - runeLen(ellipsis)
	if room <= 0 {
		if budget >= runeLen(ellipsis) {
			return ellipsis
		}
		return ""
	}

	var sb strings.Builder
	used := 0
	for _, r := range raw {
		e := b.m.escape(string(r))
		l := runeLen(e)
		if used+l > room {
			break
		}
		sb.WriteString(e)
		used += l
	}
	return strings.TrimRight(sb.String(), " ") + ellipsis
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
