package services

import (
	"math"
	"unicode/utf8"

	"precis/internal/models"
)

// ComputeStats counts characters (runes) and derives the reduction percentage.
// original must be non-empty; the orchestrator rejects empty input before this point.
// The percentage is negative when formatted is longer and is not clamped. Halves round to
// even.
func ComputeStats(original, formatted string) models.Stats {
	originalLength := utf8.RuneCountInString(original)
	formattedLength := utf8.RuneCountInString(formatted)

	ratio := float64(formattedLength) / float64(originalLength)
	return models.Stats{
		OriginalLength:   originalLength,
		FormattedLength:  formattedLength,
		ReductionPercent: int(math.RoundToEven((1 - ratio) * 100)),
	}
}
