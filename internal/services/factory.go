package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"precis/internal/config"
	"precis/internal/costtracker"
	"precis/internal/models"
)

// NewModelLoader returns the loader for the configured provider. Unknown providers are a
// configuration error reported immediately; everything else is deferred to the load.
func NewModelLoader(cfg *config.Config, usage costtracker.CostTracker) (LoaderFunc, error) {
	switch cfg.Model.Provider {
	case config.ProviderOpenAI, config.ProviderGemini, config.ProviderLocal:
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Model.Provider)
	}

	return func(ctx context.Context) (Model, error) {
		var prompt string
		if cfg.Model.Provider != config.ProviderLocal {
			p, err := config.LoadPromptContent(cfg.Model.Prompt)
			if err != nil {
				return nil, &models.ModelLoadError{Provider: cfg.Model.Provider, Model: cfg.Model.Name, Err: fmt.Errorf("load prompt: %w", err)}
			}
			prompt = p
		}

		log.Debugf("Loading %s model %q", cfg.Model.Provider, cfg.Model.Name)
		switch cfg.Model.Provider {
		case config.ProviderOpenAI:
			return LoadOpenAIModel(ctx, cfg, prompt, usage)
		case config.ProviderGemini:
			return LoadGeminiModel(ctx, cfg, prompt, usage)
		default:
			m, err := LoadLocalModel(ctx, cfg)
			if err != nil {
				return nil, &models.ModelLoadError{Provider: config.ProviderLocal, Model: cfg.Model.Name, Err: err}
			}
			return m, nil
		}
	}, nil
}
