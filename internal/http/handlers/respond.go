package handlers

import (
	"errors"
	"net/http"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/user"
	"github.com/devsync89/jobportal/internal/http/middlewares"
	"github.com/devsync89/jobportal/internal/pipeline"
	"github.com/devsync89/jobportal/internal/selection"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

func RespondUnAuthorized(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusUnauthorized, code, message, nil)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, "forbidden", message, nil)
}

// RespondPipelineError maps the typed failures of tracking operations to one
// HTTP vocabulary, so every endpoint reports the same way:
//
//	not found      -> 404 not_found
//	forbidden      -> 403 forbidden
//	invalid state  -> 409 invalid_state
//	invalid range  -> 400 invalid_range
//
// Returns false when err is nil.
func RespondPipelineError(ctx *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, candidate.ErrNotFound):
		RespondNotFound(ctx, "Candidate not found")
	case errors.Is(err, interview.ErrNotFound):
		RespondNotFound(ctx, "Interview not found")
	case errors.Is(err, user.ErrNotFound):
		RespondNotFound(ctx, "User not found")
	case errors.Is(err, pipeline.ErrForbidden):
		RespondForbidden(ctx, "Role not permitted for this operation")
	case errors.Is(err, pipeline.ErrInvalidState):
		RespondError(ctx, http.StatusConflict, "invalid_state", "Current status does not permit this transition", nil)
	case errors.Is(err, selection.ErrInvalidRange):
		RespondError(ctx, http.StatusBadRequest, "invalid_range", "Selection range is out of bounds", nil)
	default:
		RespondInternal(ctx, "Operation failed")
	}

	return true
}
