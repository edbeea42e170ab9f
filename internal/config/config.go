package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

type Config struct {
	Model struct {
		Provider string        `mapstructure:"provider"` // "openai", "gemini" or "local"
		Name     string        `mapstructure:"name"`
		Prompt   string        `mapstructure:"prompt"` // Path to the system prompt template
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"model"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"` // Any OpenAI-compatible endpoint
	} `mapstructure:"openai"`

	Google struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"google"`

	Defaults struct {
		Tone   string `mapstructure:"tone"`
		Length string `mapstructure:"length"`
	} `mapstructure:"defaults"`

	Serve struct {
		Addr string `mapstructure:"addr"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"serve"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	// Pricing: map[provider][model] = struct{input_per_token, output_per_token}
	Pricing map[string]map[string]PricingInfo `mapstructure:"pricing"`
}

// DefaultModelName returns the model used when model.name is not configured.
func DefaultModelName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-1.5-flash"
	default:
		return "lead-extractive"
	}
}

func setDefaults(v *viper.Viper) {
	// Keys without a default are invisible to AutomaticEnv during Unmarshal.
	v.SetDefault("model.provider", ProviderLocal)
	v.SetDefault("model.name", "")
	v.SetDefault("model.prompt", "")
	v.SetDefault("model.timeout", 60*time.Second)
	v.SetDefault("defaults.tone", "formal")
	v.SetDefault("defaults.length", "medium")
	v.SetDefault("serve.addr", "localhost")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from the working directory or ~/.config/precis,
// then applies PRECIS_* environment overrides. A missing file is not an error.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.New(), "")
}

// LoadConfigFrom is LoadConfig with an explicit viper instance and optional config file path.
func LoadConfigFrom(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "precis"))
		}
	}

	v.SetEnvPrefix("PRECIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are commonly exported without a prefix.
	_ = v.BindEnv("openai.api_key", "PRECIS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", "PRECIS_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv("google.api_key", "PRECIS_GOOGLE_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	config.Model.Provider = strings.ToLower(strings.TrimSpace(config.Model.Provider))
	if config.Model.Name == "" {
		config.Model.Name = DefaultModelName(config.Model.Provider)
	}
	return &config, nil
}
