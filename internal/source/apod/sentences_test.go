package apod

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"apod_poster/internal/domain"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "  ", want: nil},
		{name: "single without terminator", in: "A faint glow", want: []string{"A faint glow"}},
		{name: "mixed terminators", in: "Look up! What is it? A comet.", want: []string{"Look up!", "What is it?", "A comet."}},
		{name: "decimal stays whole", in: "It spans 2.5 degrees. Wide.", want: []string{"It spans 2.5 degrees.", "Wide."}},
		{name: "trailing text", in: "One. Two", want: []string{"One.", "Two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.in))
		})
	}
}

func TestShortSentences(t *testing.T) {
	full := []string{"One.", "Two!", "Three?", "Four."}

	assert.Equal(t, []string{"One.", "Two!"}, shortSentences(full, 2))
	assert.Equal(t, []string{"One.", "Two!", "Three?"}, shortSentences(full, 3))
	assert.Equal(t, full, shortSentences(full, 10))
	assert.Equal(t, []string{"Only one"}, shortSentences([]string{"Only one"}, 3))
	assert.Equal(t, []string{"First", "cut."}, shortSentences([]string{"First", "cut", "rest"}, 2))
	assert.Nil(t, shortSentences(nil, 3))
}

func TestShortSentences_IsPrefixOfFull(t *testing.T) {
	full := splitSentences("Stars form in clouds. Gravity pulls gas inward. The core heats up. Fusion starts. Light escapes.")

	for n := 1; n <= len(full)+1; n++ {
		short := shortSentences(full, n)
		assert.LessOrEqual(t, len(short), len(full))
		assert.True(t, strings.HasPrefix(strings.Join(full, " "), strings.Join(short, " ")))
	}
}

func TestShortSentences_NeverLongerThanFull(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "unterminated", text: "A faint glow"},
		{name: "ends in exclamation", text: "Look up! Wow!"},
		{name: "ends in question", text: "Is it gas?"},
		{name: "unterminated tail after cut", text: "One. Two. Three. Four and more"},
		{name: "many sentences", text: "One. Two! Three? Four. Five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.ApodRecord{ExplanationFull: splitSentences(tt.text)}
			record.ExplanationShort = shortSentences(record.ExplanationFull, 3)

			assert.LessOrEqual(t, len(record.ShortExplanation()), len(record.FullExplanation()))
		})
	}
}
