package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"precis/internal/models"
)

func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderOpenAI:
		// A custom base URL usually points at a local server that ignores the key.
		if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
			return errors.New("openai.api_key (or OPENAI_API_KEY) is required when model.provider is openai")
		}
	case ProviderGemini:
		if c.Google.APIKey == "" {
			return errors.New("google.api_key (or GOOGLE_API_KEY) is required when model.provider is gemini")
		}
	case ProviderLocal:
	default:
		return fmt.Errorf("unknown model.provider %q (want openai, gemini or local)", c.Model.Provider)
	}

	if strings.TrimSpace(c.Model.Name) == "" {
		return errors.New("model.name must not be empty")
	}
	if c.Model.Timeout < 0 {
		return fmt.Errorf("model.timeout (%s) must not be negative", c.Model.Timeout)
	}

	if _, err := models.ParseTone(c.Defaults.Tone); err != nil {
		return fmt.Errorf("defaults.tone: %w", err)
	}
	if _, err := models.ParseLength(c.Defaults.Length); err != nil {
		return fmt.Errorf("defaults.length: %w", err)
	}

	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port (%d) must be between 1 and 65535", c.Serve.Port)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}

	for provider, prices := range c.Pricing {
		for model, price := range prices {
			if price.InputPerToken < 0 || price.OutputPerToken < 0 {
				return fmt.Errorf("pricing for provider '%s', model '%s' has negative token cost", provider, model)
			}
		}
	}

	return nil
}
