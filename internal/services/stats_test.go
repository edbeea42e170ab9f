package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		formatted string
		origLen   int
		fmtLen    int
		reduction int
	}{
		{"typical reduction", strings.Repeat("a", 500), strings.Repeat("b", 120), 500, 120, 76},
		{"no reduction", "abcd", "abcd", 4, 4, 0},
		{"longer output is negative", strings.Repeat("a", 10), strings.Repeat("b", 25), 10, 25, -150},
		{"empty output", "abc", "", 3, 0, 100},
		{"rounds to nearest", strings.Repeat("a", 3), "b", 3, 1, 67},
		{"half rounds to even", strings.Repeat("a", 8), "bbb", 8, 3, 62},
		{"counts characters not bytes", "héllo wörld", "é", 11, 1, 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.original, tt.formatted)
			assert.Equal(t, tt.origLen, stats.OriginalLength)
			assert.Equal(t, tt.fmtLen, stats.FormattedLength)
			assert.Equal(t, tt.reduction, stats.ReductionPercent)
		})
	}
}

func TestComputeStats_MatchesFormula(t *testing.T) {
	for orig := 1; orig <= 60; orig++ {
		for formatted := 0; formatted <= 90; formatted += 7 {
			stats := ComputeStats(strings.Repeat("x", orig), strings.Repeat("y", formatted))
			want := int(math.RoundToEven((1 - float64(formatted)/float64(orig)) * 100))
			assert.Equal(t, want, stats.ReductionPercent, "orig=%d formatted=%d", orig, formatted)
		}
	}
}
