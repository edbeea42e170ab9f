package apihandlers

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"precis/internal/app"
	"precis/internal/models"
	"precis/internal/services"
)

// DownloadFilename is the attachment name of a downloaded summary.
const DownloadFilename = "summary.txt"

// APIHandler serves the summarization API. Summarize calls are serialized: at most one
// request uses the model at a time.
type APIHandler struct {
	App *app.App

	mu sync.Mutex
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// SummarizeRequest is the body of the summarize endpoints. Empty tone or length fall back
// to the configured defaults.
type SummarizeRequest struct {
	Text   string `json:"text"`
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

// SummarizeResponse is a SummarizationResult plus the settings that produced it.
type SummarizeResponse struct {
	RequestID string `json:"request_id"`
	Tone      string `json:"tone"`
	Length    string `json:"length"`
	models.SummarizationResult
}

// SummarizeHandler handles POST /api/v1/summarize.
func (h *APIHandler) SummarizeHandler(c *gin.Context) {
	reqID, req, ok := h.parseSummarizeRequest(c)
	if !ok {
		return
	}

	res, err := h.summarize(c.Request.Context(), reqID, req)
	if err != nil {
		log.Warnf("API summarize %s failed: %v", reqID, err)
		SummarizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{
		RequestID:           reqID.String(),
		Tone:                req.Tone.String(),
		Length:              req.Length.String(),
		SummarizationResult: *res,
	})
}

// DownloadHandler handles POST /api/v1/summarize/download. The formatted summary is
// returned as a plain text attachment.
func (h *APIHandler) DownloadHandler(c *gin.Context) {
	reqID, req, ok := h.parseSummarizeRequest(c)
	if !ok {
		return
	}

	res, err := h.summarize(c.Request.Context(), reqID, req)
	if err != nil {
		log.Warnf("API download %s failed: %v", reqID, err)
		SummarizeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(res.FormattedSummary))
}

type tonePreset struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type lengthPreset struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	models.LengthProfile
}

// PresetsHandler handles GET /api/v1/presets.
func (h *APIHandler) PresetsHandler(c *gin.Context) {
	tones := make([]tonePreset, 0, len(models.Tones))
	for _, t := range models.Tones {
		tones = append(tones, tonePreset{Name: t.String(), Label: t.Label()})
	}
	lengths := make([]lengthPreset, 0, len(models.Lengths))
	for _, l := range models.Lengths {
		lengths = append(lengths, lengthPreset{Name: l.String(), Label: l.Label(), LengthProfile: services.ResolveLength(l)})
	}

	c.JSON(http.StatusOK, gin.H{
		"tones":   tones,
		"lengths": lengths,
		"defaults": gin.H{
			"tone":   h.App.Config.Defaults.Tone,
			"length": h.App.Config.Defaults.Length,
		},
	})
}

// UsageHandler handles GET /api/v1/usage.
func (h *APIHandler) UsageHandler(c *gin.Context) {
	ctx := c.Request.Context()
	entries, err := h.App.CostTracker.ListUsage(ctx)
	if err != nil {
		Internal(c, "list usage: "+err.Error())
		return
	}
	totals, err := h.App.CostTracker.Summary(ctx)
	if err != nil {
		Internal(c, "usage summary: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calls":         totals.Calls,
		"input_tokens":  totals.InputTokens,
		"output_tokens": totals.OutputTokens,
		"cost":          totals.Cost,
		"entries":       entries,
	})
}

// HealthHandler handles GET /health. A failed model load makes the service unhealthy.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	status := h.App.Models.Status()
	body := gin.H{
		"status": "ok",
		"model": gin.H{
			"provider":     h.App.Config.Model.Provider,
			"name":         h.App.Config.Model.Name,
			"status":       status.String(),
			"load_time_ms": h.App.Models.LoadTime().Milliseconds(),
		},
	}
	if status == services.ModelStatusFailed {
		body["status"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *APIHandler) parseSummarizeRequest(c *gin.Context) (uuid.UUID, models.SummarizationRequest, bool) {
	reqID := uuid.New()
	c.Header("X-Request-ID", reqID.String())

	var body SummarizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return reqID, models.SummarizationRequest{}, false
	}

	toneStr := body.Tone
	if strings.TrimSpace(toneStr) == "" {
		toneStr = h.App.Config.Defaults.Tone
	}
	tone, err := models.ParseTone(toneStr)
	if err != nil {
		BadRequest(c, err.Error())
		return reqID, models.SummarizationRequest{}, false
	}

	lengthStr := body.Length
	if strings.TrimSpace(lengthStr) == "" {
		lengthStr = h.App.Config.Defaults.Length
	}
	length, err := models.ParseLength(lengthStr)
	if err != nil {
		BadRequest(c, err.Error())
		return reqID, models.SummarizationRequest{}, false
	}

	return reqID, models.NewSummarizationRequest(body.Text, tone, length), true
}

func (h *APIHandler) summarize(ctx context.Context, reqID uuid.UUID, req models.SummarizationRequest) (*models.SummarizationResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	log.Debugf("API summarize %s: %d bytes, tone=%s, length=%s", reqID, len(req.Text), req.Tone, req.Length)
	return h.App.SummaryService.Process(services.WithRequestID(ctx, reqID), req)
}
