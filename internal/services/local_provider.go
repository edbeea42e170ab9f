package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"

	"precis/internal/config"
)

// SentenceTokenizer splits text into sentences.
type SentenceTokenizer interface {
	Tokenize(text string) []*sentences.Sentence
}

// LocalModel is an offline extractive summarizer: it keeps leading sentences until the
// minimum budget is reached, never exceeding the maximum. Tokens are approximated by words.
// Output is always deterministic.
type LocalModel struct {
	tokenizer SentenceTokenizer
	model     string
}

// NewLocalModel wraps a tokenizer.
func NewLocalModel(tokenizer SentenceTokenizer, model string) *LocalModel {
	return &LocalModel{tokenizer: tokenizer, model: model}
}

// LoadLocalModel builds the English sentence tokenizer from its bundled training data.
func LoadLocalModel(ctx context.Context, cfg *config.Config) (*LocalModel, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english sentence tokenizer: %w", err)
	}
	log.Infof("Local extractive model initialized (model: %s)", cfg.Model.Name)
	return NewLocalModel(tokenizer, cfg.Model.Name), nil
}

// Name returns the provider name.
func (m *LocalModel) Name() string { return config.ProviderLocal }

// ModelName returns the specific model identifier.
func (m *LocalModel) ModelName() string { return m.model }

func (m *LocalModel) Summarize(ctx context.Context, text string, minTokens, maxTokens int, deterministic bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if maxTokens <= 0 {
		return "", fmt.Errorf("invalid token budget %d-%d", minTokens, maxTokens)
	}

	var picked []string
	total := 0
	for _, s := range m.tokenizer.Tokenize(text) {
		words := strings.Fields(s.Text)
		if len(words) == 0 {
			continue
		}
		if total+len(words) > maxTokens {
			if total == 0 {
				// First sentence alone is over budget: cut it at the word limit.
				picked = append(picked, strings.Join(words[:maxTokens], " "))
			}
			break
		}
		picked = append(picked, strings.Join(words, " "))
		total += len(words)
		if total >= minTokens {
			break
		}
	}

	if len(picked) == 0 {
		return "", fmt.Errorf("no sentences found in input")
	}
	return strings.Join(picked, " "), nil
}

var _ Model = (*LocalModel)(nil)
