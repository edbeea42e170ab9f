package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precis/internal/config"
	"precis/internal/models"
)

func TestNewModelLoader_UnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Model.Provider = "anthropic"

	loader, err := NewModelLoader(cfg, nil)
	assert.Nil(t, loader)
	assert.EqualError(t, err, "unsupported model provider: anthropic")
}

func TestNewModelLoader_Local(t *testing.T) {
	cfg := &config.Config{}
	cfg.Model.Provider = config.ProviderLocal
	cfg.Model.Name = "lead-extractive"

	loader, err := NewModelLoader(cfg, nil)
	require.NoError(t, err)

	m, err := loader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.ProviderLocal, m.Name())
}

func TestNewModelLoader_MissingPromptFileIsLoadError(t *testing.T) {
	cfg := &config.Config{}
	cfg.Model.Provider = config.ProviderOpenAI
	cfg.Model.Name = "gpt-test"
	cfg.Model.Prompt = filepath.Join(t.TempDir(), "missing.txt")

	loader, err := NewModelLoader(cfg, nil)
	require.NoError(t, err)

	_, err = loader(context.Background())
	assert.ErrorIs(t, err, models.ErrModelLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
