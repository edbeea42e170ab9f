package services

import (
	"context"
	"strings"
	"testing"

	"github.com/neurosnap/sentences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precis/internal/config"
)

// splitTokenizer splits on "|" so tests control sentence boundaries exactly.
type splitTokenizer struct{}

func (splitTokenizer) Tokenize(text string) []*sentences.Sentence {
	var out []*sentences.Sentence
	for _, part := range strings.Split(text, "|") {
		out = append(out, &sentences.Sentence{Text: part})
	}
	return out
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("w ", n))
}

func TestLocalModel_Summarize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		min, max  int
		wantWords int
	}{
		{"stops once minimum is reached", words(5) + "|" + words(5) + "|" + words(5), 8, 20, 10},
		{"single sentence meets minimum", words(12) + "|" + words(5), 10, 20, 12},
		{"never exceeds maximum", words(6) + "|" + words(10), 10, 12, 6},
		{"overlong first sentence is cut", words(40), 5, 15, 15},
		{"short input returned whole", words(3), 20, 50, 3},
		{"blank sentences skipped", "  |" + words(4), 2, 10, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLocalModel(splitTokenizer{}, "lead")
			got, err := m.Summarize(context.Background(), tt.text, tt.min, tt.max, true)
			require.NoError(t, err)
			assert.Len(t, strings.Fields(got), tt.wantWords)
		})
	}
}

func TestLocalModel_Errors(t *testing.T) {
	m := NewLocalModel(splitTokenizer{}, "lead")

	_, err := m.Summarize(context.Background(), "   ", 20, 50, true)
	assert.EqualError(t, err, "no sentences found in input")

	_, err = m.Summarize(context.Background(), "text", 0, 0, true)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Summarize(ctx, "text", 20, 50, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadLocalModel_EnglishTokenizer(t *testing.T) {
	cfg := &config.Config{}
	cfg.Model.Name = "lead-extractive"

	m, err := LoadLocalModel(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "local", m.Name())
	assert.Equal(t, "lead-extractive", m.ModelName())

	text := "The committee met on Monday to review the budget. It approved the plan after a long debate. Members will vote again next month."
	got, err := m.Summarize(context.Background(), text, 5, 30, true)
	require.NoError(t, err)
	assert.Equal(t, "The committee met on Monday to review the budget.", got)

	again, err := m.Summarize(context.Background(), text, 5, 30, true)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
