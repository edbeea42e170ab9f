package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tone selects the presentational style applied to a raw model summary.
type Tone int

const (
	ToneFormal Tone = iota
	ToneCasual
	ToneBulletPoints
)

// Length selects a token budget preset.
type Length int

const (
	LengthBrief Length = iota
	LengthMedium
	LengthDetailed
)

// Tones lists every tone in display order.
var Tones = []Tone{ToneFormal, ToneCasual, ToneBulletPoints}

// Lengths lists every length preset in display order.
var Lengths = []Length{LengthBrief, LengthMedium, LengthDetailed}

func (t Tone) String() string {
	switch t {
	case ToneFormal:
		return "formal"
	case ToneCasual:
		return "casual"
	case ToneBulletPoints:
		return "bullets"
	default:
		return fmt.Sprintf("tone(%d)", int(t))
	}
}

// Label is the human-facing name shown in menus and tables.
func (t Tone) Label() string {
	switch t {
	case ToneFormal:
		return "Formal"
	case ToneCasual:
		return "Casual"
	case ToneBulletPoints:
		return "Bullet Points"
	default:
		return t.String()
	}
}

func (l Length) String() string {
	switch l {
	case LengthBrief:
		return "brief"
	case LengthMedium:
		return "medium"
	case LengthDetailed:
		return "detailed"
	default:
		return fmt.Sprintf("length(%d)", int(l))
	}
}

// Label is the human-facing name shown in menus and tables.
func (l Length) Label() string {
	switch l {
	case LengthBrief:
		return "Brief"
	case LengthMedium:
		return "Medium"
	case LengthDetailed:
		return "Detailed"
	default:
		return l.String()
	}
}

// ParseTone accepts the CLI names plus the menu label
// ("Bullet Points"), case-insensitively.
func ParseTone(s string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "formal":
		return ToneFormal, nil
	case "casual":
		return ToneCasual, nil
	case "bullets", "bullet", "bullet points", "bullet-points", "bulletpoints":
		return ToneBulletPoints, nil
	default:
		return ToneFormal, fmt.Errorf("%w: %q (want formal, casual or bullets)", ErrUnknownTone, s)
	}
}

// ParseLength accepts brief, medium or detailed, case-insensitively.
func ParseLength(s string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brief":
		return LengthBrief, nil
	case "medium":
		return LengthMedium, nil
	case "detailed":
		return LengthDetailed, nil
	default:
		return LengthMedium, fmt.Errorf("%w: %q (want brief, medium or detailed)", ErrUnknownLength, s)
	}
}

// LengthProfile is the token budget handed to the model.
type LengthProfile struct {
	MinTokens int `json:"min_tokens"`
	MaxTokens int `json:"max_tokens"`
}

// SummarizationRequest is built once per user action and not modified afterwards.
type SummarizationRequest struct {
	Text   string
	Tone   Tone
	Length Length
}

// NewSummarizationRequest builds a request. Validation of Text happens in the orchestrator.
func NewSummarizationRequest(text string, tone Tone, length Length) SummarizationRequest {
	return SummarizationRequest{Text: text, Tone: tone, Length: length}
}

// SummarizationResult is the outcome of one request. Lengths are in characters.
type SummarizationResult struct {
	RawSummary       string `json:"raw_summary"`
	FormattedSummary string `json:"formatted_summary"`
	OriginalLength   int    `json:"original_length"`
	FormattedLength  int    `json:"formatted_length"`
	ReductionPercent int    `json:"reduction_percent"`
}

// Stats holds the derived metrics of a request.
type Stats struct {
	OriginalLength   int
	FormattedLength  int
	ReductionPercent int
}

// AIUsageLog is one model call recorded by the in-memory usage tracker.
type AIUsageLog struct {
	ID           int64     `json:"id"`
	RequestID    uuid.UUID `json:"request_id"`
	Timestamp    time.Time `json:"timestamp"`
	ProviderName string    `json:"provider"`
	ModelName    string    `json:"model"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	Cost         float64   `json:"cost"`
}
