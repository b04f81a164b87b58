package caption

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apod_poster/internal/domain"
)

func testConfig(dialect domain.Dialect, overflow Overflow) Config {
	return Config{
		Dialect:    dialect,
		Overflow:   overflow,
		PhotoCap:   1024,
		MessageCap: 4096,
		Heading:    "Astronomy Picture of the Day",
		DateLayout: "02 January 2006",
		LinkLabel:  "View on NASA Website",
		Reserved:   DefaultReserved,
	}
}

func newTestBuilder(t *testing.T, dialect domain.Dialect, overflow Overflow) *Builder {
	t.Helper()
	b, err := NewBuilder(testConfig(dialect, overflow))
	require.NoError(t, err)
	return b
}

func testRecord() domain.ApodRecord {
	full := []string{
		"One of the most identifiable nebulae in the sky, the Horsehead Nebula in Orion, is part of a large, dark, molecular cloud.",
		"Also known as Barnard 33, the unusual shape was first discovered in the late 1800s!",
		"Is the red glow hydrogen gas?",
		"It is (mostly).",
	}
	return domain.ApodRecord{
		Date:             time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC),
		Title:            "The Horsehead Nebula",
		Credit:           "Jane Doe, John Roe",
		ExplanationFull:  full,
		ExplanationShort: full[:3],
		PageURL:          "https://apod.nasa.gov/apod/ap261016.html",
	}
}

func longRecord(sentenceRunes, sentences int) domain.ApodRecord {
	r := testRecord()
	var full []string
	for i := 0; i < sentences; i++ {
		full = append(full, strings.Repeat("a", sentenceRunes-1)+".")
	}
	r.ExplanationFull = full
	r.ExplanationShort = full[:min(3, len(full))]
	return r
}

// unescapedReserved returns the first reserved rune not preceded by an escaping backslash.
func unescapedReserved(s string) (rune, bool) {
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if strings.ContainsRune(DefaultReserved, r) {
			return r, true
		}
	}
	return 0, false
}

func capFor(kind domain.BlockKind) int {
	if kind == domain.BlockPhotoCaption {
		return 1024
	}
	return 4096
}

func assertWithinCaps(t *testing.T, blocks []domain.CaptionBlock) {
	t.Helper()
	for _, b := range blocks {
		assert.LessOrEqual(t, utf8.RuneCountInString(b.Text), capFor(b.Kind), "block %s too long", b.Kind)
	}
}

func TestBuild_PhotoCaptionFits(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)

	blocks := b.Build(testRecord(), true)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockPhotoCaption, blocks[0].Kind)
	text := blocks[0].Text
	assert.True(t, strings.HasPrefix(text, "*Astronomy Picture of the Day – 16 October 2026*\n\n*The Horsehead Nebula*\n_Image Credit: Jane Doe, John Roe_\n\n"))
	assert.Contains(t, text, `molecular cloud\. Also known`)
	assert.Contains(t, text, `1800s\!`)
	assert.NotContains(t, text, "mostly", "photo caption carries the short explanation only")
}

func TestBuild_SplitOnOverflow(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)
	record := longRecord(400, 5)

	blocks := b.Build(record, true)

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockPhotoCaption, blocks[0].Kind)
	assert.Equal(t, domain.BlockMessage, blocks[1].Kind)
	assert.NotContains(t, blocks[0].Text, "aaaa")
	assert.Equal(t, EscapeMarkdownV2(record.FullExplanation()), blocks[1].Text)
	assertWithinCaps(t, blocks)
}

func TestBuild_SplitTruncatesVeryLongExplanation(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)

	blocks := b.Build(longRecord(1000, 10), true)

	require.Len(t, blocks, 2)
	assert.True(t, strings.HasSuffix(blocks[1].Text, "…"))
	assertWithinCaps(t, blocks)
}

func TestBuild_TruncateOnOverflow(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowTruncate)

	blocks := b.Build(longRecord(400, 5), true)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockPhotoCaption, blocks[0].Kind)
	assert.True(t, strings.HasSuffix(blocks[0].Text, "…"))
	assert.LessOrEqual(t, utf8.RuneCountInString(blocks[0].Text), 1024)
	assert.Greater(t, utf8.RuneCountInString(blocks[0].Text), 1000)
}

func TestBuild_TruncateNeverSplitsEscapes(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowTruncate)
	record := testRecord()
	sentence := strings.Repeat("a.b", 200) + "."
	record.ExplanationFull = []string{sentence}
	record.ExplanationShort = []string{sentence}

	blocks := b.Build(record, true)

	require.Len(t, blocks, 1)
	parts := strings.Split(blocks[0].Text, "\n\n")
	_, found := unescapedReserved(strings.TrimSuffix(parts[len(parts)-1], "…"))
	assert.False(t, found)
	assertWithinCaps(t, blocks)
}

func TestBuild_TextOnly(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)

	blocks := b.Build(testRecord(), false)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockMessage, blocks[0].Kind)
	text := blocks[0].Text
	assert.Contains(t, text, `It is \(mostly\)\.`, "text-only post carries the full explanation")
	assert.True(t, strings.HasSuffix(text, "[View on NASA Website](https://apod.nasa.gov/apod/ap261016.html)"))
}

func TestBuild_TextOnlyLongExplanationKeepsLink(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)

	blocks := b.Build(longRecord(1000, 10), false)

	require.Len(t, blocks, 1)
	assertWithinCaps(t, blocks)
	assert.True(t, strings.HasSuffix(blocks[0].Text, "(https://apod.nasa.gov/apod/ap261016.html)"))
	assert.Contains(t, blocks[0].Text, "…")
}

func TestBuild_LongHeaderFieldsStayWithinCap(t *testing.T) {
	for _, overflow := range []Overflow{OverflowSplit, OverflowTruncate} {
		b := newTestBuilder(t, domain.DialectMarkdownV2, overflow)
		record := testRecord()
		record.Title = strings.Repeat("Title! ", 300)
		record.Credit = strings.Repeat("Credit_", 300)

		for _, withImage := range []bool{true, false} {
			blocks := b.Build(record, withImage)
			assertWithinCaps(t, blocks)
			for _, block := range blocks {
				assert.Contains(t, block.Text, "…")
			}
		}
	}
}

func TestBuild_EscapesEveryReservedCharacter(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)
	record := testRecord()
	record.Title = `A_b*c[d]e(f)g~h` + "`" + `i>j#k+l-m=n|o{p}q.r!s\t`
	record.Credit = "Team [NASA] & ESA (2026)."
	record.ExplanationFull = []string{"Math: 1+1=2.", "Path: C:\\dir.", "Done!"}
	record.ExplanationShort = record.ExplanationFull

	for _, withImage := range []bool{true, false} {
		for _, block := range b.Build(record, withImage) {
			text := block.Text
			// Strip builder-owned markup before checking record text.
			text = strings.ReplaceAll(text, "[View on NASA Website](https://apod.nasa.gov/apod/ap261016.html)", "")
			lines := strings.Split(text, "\n")
			for _, line := range lines {
				line = strings.TrimSuffix(strings.TrimPrefix(line, "*"), "*")
				line = strings.TrimSuffix(strings.TrimPrefix(line, "_"), "_")
				r, found := unescapedReserved(line)
				assert.False(t, found, "unescaped %q in %q", r, line)
			}
		}
	}
}

func TestBuild_HTMLDialect(t *testing.T) {
	b := newTestBuilder(t, domain.DialectHTML, OverflowSplit)
	record := testRecord()
	record.Title = "Stars <& Dust>"

	blocks := b.Build(record, false)

	require.Len(t, blocks, 1)
	text := blocks[0].Text
	assert.Contains(t, text, "<b>Stars &lt;&amp; Dust&gt;</b>")
	assert.Contains(t, text, "<i>Image Credit: Jane Doe, John Roe</i>")
	assert.Contains(t, text, "It is (mostly).")
	assert.True(t, strings.HasSuffix(text, `<a href="https://apod.nasa.gov/apod/ap261016.html">View on NASA Website</a>`))
}

func TestBuild_NoShortExplanation(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)
	record := testRecord()
	record.ExplanationFull = nil
	record.ExplanationShort = nil

	blocks := b.Build(record, true)

	require.Len(t, blocks, 1)
	assert.False(t, strings.HasSuffix(blocks[0].Text, "\n\n"))
}

func TestBuild_Deterministic(t *testing.T) {
	b := newTestBuilder(t, domain.DialectMarkdownV2, OverflowSplit)
	record := longRecord(300, 8)

	assert.Equal(t, b.Build(record, true), b.Build(record, true))
	assert.Equal(t, b.Build(record, false), b.Build(record, false))
}

func TestNewBuilder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown dialect", mutate: func(c *Config) { c.Dialect = "bbcode" }},
		{name: "unknown overflow", mutate: func(c *Config) { c.Overflow = "drop" }},
		{name: "photo cap too small", mutate: func(c *Config) { c.PhotoCap = 10 }},
		{name: "message below photo", mutate: func(c *Config) { c.PhotoCap = 2048; c.MessageCap = 1024 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(domain.DialectMarkdownV2, OverflowSplit)
			tt.mutate(&cfg)
			_, err := NewBuilder(cfg)
			assert.Error(t, err)
		})
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `1\+1\=2\. \(ok\)\!`, EscapeMarkdownV2("1+1=2. (ok)!"))
	assert.Equal(t, `C:\\dir`, EscapeMarkdownV2(`C:\dir`))
	assert.Equal(t, "plain words – ok", EscapeMarkdownV2("plain words – ok"))

	for _, c := range DefaultReserved {
		out := EscapeMarkdownV2(string(c))
		assert.Equal(t, `\`+string(c), out)
	}
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; c", EscapeHTML("a <b> & c"))
	assert.Equal(t, `"quoted"`, EscapeHTML(`"quoted"`))
}
