package clix

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"precis/internal/models"
)

// SummaryParams are the per-request choices shared by the summarize and interactive commands.
type SummaryParams struct {
	Tone   models.Tone
	Length models.Length
}

// AddSummaryFlags registers --tone and --length.
func AddSummaryFlags(flags *pflag.FlagSet) {
	flags.StringP("tone", "t", "", "Summary tone: formal, casual or bullets (default from config)")
	flags.StringP("length", "l", "", "Summary length: brief, medium or detailed (default from config)")
}

// ParseSummaryParams reads --tone and --length, falling back to the configured defaults
// when a flag is absent or empty.
func ParseSummaryParams(flags *pflag.FlagSet, defaultTone, defaultLength string) (SummaryParams, error) {
	toneStr, _ := flags.GetString("tone")
	if strings.TrimSpace(toneStr) == "" {
		toneStr = defaultTone
	}
	lengthStr, _ := flags.GetString("length")
	if strings.TrimSpace(lengthStr) == "" {
		lengthStr = defaultLength
	}

	tone, err := models.ParseTone(toneStr)
	if err != nil {
		return SummaryParams{}, err
	}
	length, err := models.ParseLength(lengthStr)
	if err != nil {
		return SummaryParams{}, err
	}
	return SummaryParams{Tone: tone, Length: length}, nil
}

// OutputPath returns the --output value with a .txt extension added when it has none.
// An empty result means no file was requested.
func OutputPath(flags *pflag.FlagSet) string {
	out, _ := flags.GetString("output")
	return EnsureTxtExt(strings.TrimSpace(out))
}

// EnsureTxtExt appends ".txt" unless the name already ends with it (any case).
func EnsureTxtExt(name string) string {
	if name == "" {
		return ""
	}
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return name
	}
	return name + ".txt"
}
