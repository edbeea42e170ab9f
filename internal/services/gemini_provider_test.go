package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precis/internal/config"
	"precis/internal/costtracker"
)

type fakeGeminiBackend struct {
	resp *genai.GenerateContentResponse
	err  error

	system        string
	text          string
	maxTokens     int
	deterministic bool
	closed        bool
}

func (b *fakeGeminiBackend) Generate(_ context.Context, _, system, text string, maxTokens int, deterministic bool) (*genai.GenerateContentResponse, error) {
	b.system = system
	b.text = text
	b.maxTokens = maxTokens
	b.deterministic = deterministic
	return b.resp, b.err
}

func (b *fakeGeminiBackend) Info(context.Context, string) error { return nil }

func (b *fakeGeminiBackend) Close() error {
	b.closed = true
	return nil
}

func geminiResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		UsageMetadata: &genai.UsageMetadata{
			PromptTokenCount:     40,
			CandidatesTokenCount: 8,
			TotalTokenCount:      48,
		},
	}
}

func TestGeminiModel_Summarize(t *testing.T) {
	backend := &fakeGeminiBackend{resp: geminiResponse(genai.Text("Part one. "), genai.Text("Part two.\n"))}
	tracker := costtracker.New()
	pricing := map[string]config.PricingInfo{"gemini-test": {InputPerToken: 0.5, OutputPerToken: 1}}
	m := NewGeminiModel(backend, "gemini-test", "{{MIN_TOKENS}}-{{MAX_TOKENS}}", tracker, pricing)

	got, err := m.Summarize(context.Background(), "long text", 100, 250, true)
	require.NoError(t, err)

	assert.Equal(t, "Part one. Part two.", got)
	assert.Equal(t, "100-250", backend.system)
	assert.Equal(t, "long text", backend.text)
	assert.Equal(t, 250, backend.maxTokens)
	assert.True(t, backend.deterministic)

	totals, err := tracker.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Calls)
	assert.Equal(t, 40, totals.InputTokens)
	assert.Equal(t, 8, totals.OutputTokens)
	assert.InDelta(t, 28.0, totals.Cost, 1e-9)
}

func TestGeminiModel_SummarizeErrors(t *testing.T) {
	t.Run("backend failure", func(t *testing.T) {
		m := NewGeminiModel(&fakeGeminiBackend{err: errors.New("quota")}, "g", "", nil, nil)
		_, err := m.Summarize(context.Background(), "x", 20, 50, true)
		assert.EqualError(t, err, "gemini generate content: quota")
	})

	t.Run("no candidates", func(t *testing.T) {
		m := NewGeminiModel(&fakeGeminiBackend{resp: &genai.GenerateContentResponse{}}, "g", "", nil, nil)
		_, err := m.Summarize(context.Background(), "x", 20, 50, true)
		assert.EqualError(t, err, "no candidates returned")
	})

	t.Run("no text parts", func(t *testing.T) {
		m := NewGeminiModel(&fakeGeminiBackend{resp: geminiResponse(genai.Blob{MIMEType: "image/png"})}, "g", "", nil, nil)
		_, err := m.Summarize(context.Background(), "x", 20, 50, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty summary returned")
	})
}

func TestGeminiModel_Close(t *testing.T) {
	backend := &fakeGeminiBackend{}
	m := NewGeminiModel(backend, "g", "", nil, nil)
	require.NoError(t, m.Close())
	assert.True(t, backend.closed)
	assert.Equal(t, "gemini", m.Name())
	assert.Equal(t, "g", m.ModelName())
}
