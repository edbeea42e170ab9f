package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"precis/internal/config"
	"precis/internal/costtracker"
	"precis/internal/models"
)

// ChatCompletionClient is the subset of *openai.Client used by OpenAIModel.
type ChatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	GetModel(ctx context.Context, modelID string) (openai.Model, error)
}

// OpenAIModel summarizes through an OpenAI-compatible chat completion endpoint.
type OpenAIModel struct {
	client  ChatCompletionClient
	model   string
	prompt  string
	usage   costtracker.CostTracker
	pricing map[string]config.PricingInfo
}

// NewOpenAIModel wraps an existing client. usage and pricing may be nil.
func NewOpenAIModel(client ChatCompletionClient, model, prompt string, usage costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIModel {
	return &OpenAIModel{
		client:  client,
		model:   model,
		prompt:  prompt,
		usage:   usage,
		pricing: pricing,
	}
}

// LoadOpenAIModel builds the client and checks that the configured model exists.
func LoadOpenAIModel(ctx context.Context, cfg *config.Config, prompt string, usage costtracker.CostTracker) (*OpenAIModel, error) {
	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	if cfg.Model.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Model.Timeout}
	}

	m := NewOpenAIModel(openai.NewClientWithConfig(clientCfg), cfg.Model.Name, prompt, usage, cfg.Pricing[config.ProviderOpenAI])
	if err := m.verify(ctx); err != nil {
		return nil, &models.ModelLoadError{Provider: config.ProviderOpenAI, Model: cfg.Model.Name, Err: err}
	}

	log.Infof("OpenAI model initialized (model: %s)", cfg.Model.Name)
	return m, nil
}

func (m *OpenAIModel) verify(ctx context.Context) error {
	if _, err := m.client.GetModel(ctx, m.model); err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
			return fmt.Errorf("model not found: %w", err)
		}
		return fmt.Errorf("openai get model: %w", err)
	}
	return nil
}

// Name returns the provider name.
func (m *OpenAIModel) Name() string { return config.ProviderOpenAI }

// ModelName returns the specific model identifier.
func (m *OpenAIModel) ModelName() string { return m.model }

func (m *OpenAIModel) Summarize(ctx context.Context, text string, minTokens, maxTokens int, deterministic bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: renderPrompt(m.prompt, minTokens, maxTokens),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens: maxTokens,
	}
	if deterministic {
		// A zero temperature is dropped by omitempty and the API default of 1 applies.
		req.Temperature = math.SmallestNonzeroFloat32
		seed := 0
		req.Seed = &seed
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	m.recordUsage(ctx, resp.Usage)

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary returned (finish reason: %s)", resp.Choices[0].FinishReason)
	}
	return summary, nil
}

func (m *OpenAIModel) recordUsage(ctx context.Context, usage openai.Usage) {
	if m.usage == nil || usage.TotalTokens == 0 {
		return
	}

	var cost float64
	if priceInfo, ok := m.pricing[m.model]; ok {
		cost = float64(usage.PromptTokens)*priceInfo.InputPerToken +
			float64(usage.CompletionTokens)*priceInfo.OutputPerToken
	} else {
		log.Warnf("Pricing info not found for model '%s'. Recording tokens without cost.", m.model)
	}

	entry := &models.AIUsageLog{
		RequestID:    RequestIDFromContext(ctx),
		Timestamp:    time.Now(),
		ProviderName: m.Name(),
		ModelName:    m.model,
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		Cost:         cost,
	}
	if err := m.usage.RecordUsage(ctx, entry); err != nil {
		log.Errorf("Failed to record AI usage log for summarization: %v", err)
		return
	}
	log.Debugf("Recorded AI usage: Provider=%s, Model=%s, InputTokens=%d, OutputTokens=%d, Cost=%.8f",
		entry.ProviderName, entry.ModelName, entry.InputTokens, entry.OutputTokens, entry.Cost)
}

// renderPrompt fills the token budget placeholders of a system prompt template.
func renderPrompt(template string, minTokens, maxTokens int) string {
	if template == "" {
		template = config.DefaultPrompt
	}
	return strings.NewReplacer(
		"{{MIN_TOKENS}}", strconv.Itoa(minTokens),
		"{{MAX_TOKENS}}", strconv.Itoa(maxTokens),
	).Replace(template)
}

var _ Model = (*OpenAIModel)(nil)
