package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"precis/internal/models"
)

// APIError defines standard error response
// Example: { "error": { "code": "bad_request", "message": "Please enter some text to summarize." } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.AbortWithStatusJSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func ServiceUnavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "model_unavailable", msg)
}

// SummarizeError maps a SummaryService error to a status code.
func SummarizeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyInput):
		BadRequest(ctx, "Please enter some text to summarize.")
	case errors.Is(err, models.ErrModelLoad):
		ServiceUnavailable(ctx, err.Error())
	case errors.Is(err, models.ErrModelInvocation):
		JSONError(ctx, http.StatusBadGateway, "model_error", err.Error())
	default:
		Internal(ctx, err.Error())
	}
}
