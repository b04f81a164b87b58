// Package render merges caption blocks and the normalized image into the
// post handed to delivery. Nothing here touches the network.
package render

import (
	"apod_poster/internal/domain"
)

type Options struct {
	Dialect        domain.Dialect
	LinkLabel      string
	PhotoMaxBytes  int
	PhotoMaxAspect float64
}

// Assemble builds the post. media may be nil, in which case the post is
// text only.
func Assemble(record domain.ApodRecord, blocks []domain.CaptionBlock, media *domain.MediaPayload, opts Options) domain.RenderedPost {
	post := domain.RenderedPost{
		Date:          record.Date,
		Title:         record.Title,
		PageURL:       record.PageURL,
		Dialect:       opts.Dialect,
		CaptionBlocks: append([]domain.CaptionBlock(nil), blocks...),
		LinkButtons: []domain.LinkButton{
			{Label: opts.LinkLabel, URL: record.PageURL},
		},
	}

	if media != nil {
		m := *media
		m.AsDocument = !fitsInlinePhoto(m, opts)
		post.Media = &m
	}

	return post
}

func fitsInlinePhoto(m domain.MediaPayload, opts Options) bool {
	if opts.PhotoMaxBytes > 0 && len(m.Data) > opts.PhotoMaxBytes {
		return false
	}
	if opts.PhotoMaxAspect > 0 && m.Width > 0 && m.Height > 0 {
		w, h := float64(m.Width), float64(m.Height)
		if w/h > opts.PhotoMaxAspect || h/w > opts.PhotoMaxAspect {
			return false
		}
	}
	return true
}
