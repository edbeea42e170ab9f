package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"precis/internal/config"
	"precis/internal/costtracker"
	"precis/internal/models"
)

// GeminiBackend is the part of the Gemini API used by GeminiModel.
type GeminiBackend interface {
	Generate(ctx context.Context, model, system, text string, maxTokens int, deterministic bool) (*genai.GenerateContentResponse, error)
	Info(ctx context.Context, model string) error
	Close() error
}

// GeminiModel summarizes with a Google Gemini model.
type GeminiModel struct {
	backend GeminiBackend
	model   string
	prompt  string
	usage   costtracker.CostTracker
	pricing map[string]config.PricingInfo
}

// NewGeminiModel wraps an existing backend. usage and pricing may be nil.
func NewGeminiModel(backend GeminiBackend, model, prompt string, usage costtracker.CostTracker, pricing map[string]config.PricingInfo) *GeminiModel {
	return &GeminiModel{
		backend: backend,
		model:   model,
		prompt:  prompt,
		usage:   usage,
		pricing: pricing,
	}
}

// LoadGeminiModel creates the client and checks that the configured model exists.
func LoadGeminiModel(ctx context.Context, cfg *config.Config, prompt string, usage costtracker.CostTracker) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Google.APIKey))
	if err != nil {
		return nil, &models.ModelLoadError{Provider: config.ProviderGemini, Model: cfg.Model.Name, Err: fmt.Errorf("create Gemini client: %w", err)}
	}

	backend := &geminiClient{client: client}
	if err := backend.Info(ctx, cfg.Model.Name); err != nil {
		backend.Close()
		return nil, &models.ModelLoadError{Provider: config.ProviderGemini, Model: cfg.Model.Name, Err: err}
	}

	log.Infof("Gemini model initialized (model: %s)", cfg.Model.Name)
	return NewGeminiModel(backend, cfg.Model.Name, prompt, usage, cfg.Pricing[config.ProviderGemini]), nil
}

// Name returns the provider name.
func (m *GeminiModel) Name() string { return config.ProviderGemini }

// ModelName returns the specific model identifier.
func (m *GeminiModel) ModelName() string { return m.model }

func (m *GeminiModel) Summarize(ctx context.Context, text string, minTokens, maxTokens int, deterministic bool) (string, error) {
	resp, err := m.backend.Generate(ctx, m.model, renderPrompt(m.prompt, minTokens, maxTokens), text, maxTokens, deterministic)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned")
	}

	m.recordUsage(ctx, resp.UsageMetadata)

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", fmt.Errorf("empty summary returned (finish reason: %s)", resp.Candidates[0].FinishReason)
	}
	return summary, nil
}

// Close cleans up the Gemini client resources.
func (m *GeminiModel) Close() error {
	if m.backend != nil {
		return m.backend.Close()
	}
	return nil
}

func (m *GeminiModel) recordUsage(ctx context.Context, meta *genai.UsageMetadata) {
	if m.usage == nil || meta == nil || meta.TotalTokenCount == 0 {
		return
	}

	var cost float64
	if priceInfo, ok := m.pricing[m.model]; ok {
		cost = float64(meta.PromptTokenCount)*priceInfo.InputPerToken +
			float64(meta.CandidatesTokenCount)*priceInfo.OutputPerToken
	}

	entry := &models.AIUsageLog{
		RequestID:    RequestIDFromContext(ctx),
		Timestamp:    time.Now(),
		ProviderName: m.Name(),
		ModelName:    m.model,
		InputTokens:  int(meta.PromptTokenCount),
		OutputTokens: int(meta.CandidatesTokenCount),
		Cost:         cost,
	}
	if err := m.usage.RecordUsage(ctx, entry); err != nil {
		log.Errorf("Failed to record AI usage log for summarization: %v", err)
	}
}

// geminiClient adapts *genai.Client to GeminiBackend.
type geminiClient struct {
	client *genai.Client
}

func (c *geminiClient) Generate(ctx context.Context, model, system, text string, maxTokens int, deterministic bool) (*genai.GenerateContentResponse, error) {
	// A fresh GenerativeModel per call keeps the budget settings out of shared state.
	gm := c.client.GenerativeModel(model)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	gm.SetMaxOutputTokens(int32(maxTokens))
	gm.SetCandidateCount(1)
	if deterministic {
		gm.SetTemperature(0)
		gm.SetTopK(1)
	}
	return gm.GenerateContent(ctx, genai.Text(text))
}

func (c *geminiClient) Info(ctx context.Context, model string) error {
	if _, err := c.client.GenerativeModel(model).Info(ctx); err != nil {
		return fmt.Errorf("gemini model info: %w", err)
	}
	return nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}

var _ Model = (*GeminiModel)(nil)
