package services

import (
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"precis/internal/models"
)

// BulletMarker prefixes every line of a bullet-point summary.
const BulletMarker = "• "

// CasualLeadIns is the fixed set of phrases a casual summary starts with.
var CasualLeadIns = []string{
	"So basically, ",
	"Here's the deal: ",
	"In a nutshell, ",
	"Long story short, ",
}

// RandSource picks lead-in phrases. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// ToneFormatter rewrites a raw summary into the requested tone.
type ToneFormatter struct {
	mu  sync.Mutex
	rng RandSource
}

// NewToneFormatter uses rng for casual lead-ins. A nil rng gets a time-seeded source.
func NewToneFormatter(rng RandSource) *ToneFormatter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ToneFormatter{rng: rng}
}

// Format never fails. Unknown tones are returned unchanged like Formal.
func (f *ToneFormatter) Format(summary string, tone models.Tone) string {
	switch tone {
	case models.ToneBulletPoints:
		return bulletize(summary)
	case models.ToneCasual:
		return f.leadIn() + capitalizeFirst(strings.ToLower(summary))
	default:
		return summary
	}
}

func (f *ToneFormatter) leadIn() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CasualLeadIns[f.rng.Intn(len(CasualLeadIns))]
}

// bulletize breaks after every ". " (the period stays with its sentence) and at existing
// line breaks, trims each piece, drops empty ones and bullets the rest. This is intentionally not a sentence tokenizer:
// "e.g. this" becomes two bullets.
func bulletize(summary string) string {
	var lines []string
	for _, segment := range strings.Split(strings.ReplaceAll(summary, ". ", ".\n"), "\n") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		lines = append(lines, BulletMarker+segment)
	}
	return strings.Join(lines, "\n")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
