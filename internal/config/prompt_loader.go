package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultPromptDir is the subdirectory within the user's home directory.
const defaultPromptDir = ".config/precis/prompts"

// DefaultPromptFile is looked up in defaultPromptDir when model.prompt is empty.
const DefaultPromptFile = "summarize.txt"

// DefaultPrompt is used when no prompt file exists. {{MIN_TOKENS}} and {{MAX_TOKENS}}
// are replaced with the length profile of each request.
const DefaultPrompt = `You are an abstractive summarization model.
Summarize the text supplied by the user in plain prose.

Rules:
- Between {{MIN_TOKENS}} and {{MAX_TOKENS}} tokens.
- Keep the key facts, names, numbers and dates.
- Do not add information that is not in the text.
- No headings, no lists, no preamble. Output only the summary.`

// LoadPromptContent resolves the path for a prompt template and reads its content.
// An absolute configuredPath is used directly. A relative or empty one is treated as a
// filename within ~/.config/precis/prompts/. A missing file at the default location falls
// back to DefaultPrompt; a missing explicit file is an error.
func LoadPromptContent(configuredPath string) (string, error) {
	finalPath := configuredPath

	if !filepath.IsAbs(configuredPath) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			if configuredPath == "" {
				return DefaultPrompt, nil
			}
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}

		filename := configuredPath
		if filename == "" {
			filename = DefaultPromptFile
		}
		finalPath = filepath.Join(homeDir, defaultPromptDir, filename)
	}

	promptBytes, err := os.ReadFile(finalPath)
	if err != nil {
		if os.IsNotExist(err) && configuredPath == "" {
			return DefaultPrompt, nil
		}
		return "", fmt.Errorf("failed to read prompt file '%s': %w", finalPath, err)
	}

	prompt := strings.TrimSpace(string(promptBytes))
	if prompt == "" {
		return DefaultPrompt, nil
	}
	return prompt, nil
}
