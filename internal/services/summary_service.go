package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"precis/internal/models"
)

// SummaryService turns a SummarizationRequest into a SummarizationResult: validate, resolve
// the length budget, call the model, apply the tone and compute statistics.
// Callers that serve several sessions serialize Process calls themselves.
type SummaryService struct {
	models    *ModelProvider
	formatter *ToneFormatter
}

// NewSummaryService creates the orchestrator. provider is the process-wide model handle.
func NewSummaryService(provider *ModelProvider, formatter *ToneFormatter) *SummaryService {
	if formatter == nil {
		formatter = NewToneFormatter(nil)
	}
	return &SummaryService{
		models:    provider,
		formatter: formatter,
	}
}

// Process runs one request. Errors:
//   - models.ErrEmptyInput when the text is blank; the model is not called.
//   - *models.ModelLoadError when the model could not be loaded (fatal for the session).
//   - *models.ModelInvocationError when the model call failed; not retried.
func (s *SummaryService) Process(ctx context.Context, req models.SummarizationRequest) (*models.SummarizationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, models.ErrEmptyInput
	}

	profile := ResolveLength(req.Length)

	model, err := s.models.GetModel(ctx)
	if err != nil {
		return nil, err
	}

	log.Debugf("Summarizing %d bytes with %s/%s (tone=%s, length=%s, tokens=%d-%d)",
		len(req.Text), model.Name(), model.ModelName(), req.Tone, req.Length, profile.MinTokens, profile.MaxTokens)

	raw, err := model.Summarize(ctx, req.Text, profile.MinTokens, profile.MaxTokens, true)
	if err != nil {
		log.Warnf("Summarization failed with %s/%s: %v", model.Name(), model.ModelName(), err)
		return nil, &models.ModelInvocationError{Err: err}
	}

	formatted := s.formatter.Format(raw, req.Tone)
	stats := ComputeStats(req.Text, formatted)

	return &models.SummarizationResult{
		RawSummary:       raw,
		FormattedSummary: formatted,
		OriginalLength:   stats.OriginalLength,
		FormattedLength:  stats.FormattedLength,
		ReductionPercent: stats.ReductionPercent,
	}, nil
}

// Provider exposes the model handle, e.g. for status reporting.
func (s *SummaryService) Provider() *ModelProvider {
	return s.models
}
