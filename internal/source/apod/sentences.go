package apod

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// splitSentences cuts text after every terminal punctuation mark that is
// followed by whitespace. The input is expected to be whitespace-collapsed.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[start : loc[0]+1])
		if s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// shortSentences returns the first n sentences. When sentences were cut
// off, the last kept one is terminated with a period unless it already ends
// in terminal punctuation. The result is never longer than the input.
func shortSentences(sentences []string, n int) []string {
	if len(sentences) == 0 {
		return nil
	}
	if n <= 0 || n >= len(sentences) {
		return append([]string(nil), sentences...)
	}
	out := append([]string(nil), sentences[:n]...)
	last := out[len(out)-1]
	if !strings.ContainsAny(last[len(last)-1:], ".!?") {
		out[len(out)-1] = last + "."
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
