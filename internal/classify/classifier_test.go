package classify

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_Threshold(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two science keywords detect science",
			text: "A new study on protein folding",
			want: []string{"science"},
		},
		{
			name: "single keyword is below threshold",
			text: "A recent discovery",
			want: nil,
		},
		{
			name: "no keywords",
			text: "the quick brown fox",
			want: nil,
		},
		{
			name: "multi-label",
			text: "Researchers study a machine learning algorithm for statistics and probability modeling",
			want: []string{"science", "technology", "mathematics"},
		},
		{
			name: "case insensitive",
			text: "RESEARCH into DNA Evolution",
			want: []string{"science"},
		},
		{
			name: "repetition counts once",
			text: strings.Repeat("discovery ", 10),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Detect(tt.text))
		})
	}
}

func TestDetect_DeterministicAndBounded(t *testing.T) {
	c := NewClassifier()
	rng := rand.New(rand.NewSource(42))

	vocab := []string{
		"research", "study", "algorithm", "design", "theorem", "data",
		"banana", "weather", "software", "cell", "statistics", "creative",
		"visual", "system", "process", "the", "and", "of",
	}

	for i := 0; i < 200; i++ {
		var b strings.Builder
		for j := 0; j < rng.Intn(40); j++ {
			b.WriteString(vocab[rng.Intn(len(vocab))])
			b.WriteByte(' ')
		}
		text := b.String()

		first := c.Detect(text)
		second := c.Detect(text)
		assert.Equal(t, first, second, "same input must yield the same labels")

		for _, label := range first {
			assert.Contains(t, Domains, label)
		}
	}
}
