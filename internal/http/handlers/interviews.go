package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsync89/jobportal/internal/cache"
	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/http/middlewares"
	"github.com/devsync89/jobportal/internal/pipeline"
	"github.com/devsync89/jobportal/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewsReader interface {
	List(ctx context.Context, filter interview.ListInterviewsFilter) ([]interview.Interview, error)
	GetByID(ctx context.Context, id string) (interview.Interview, error)
}

type InterviewsHandler struct {
	reader InterviewsReader
	engine *pipeline.Engine
	stats  *cache.StatsCache
}

func NewInterviewsHandler(reader InterviewsReader, engine *pipeline.Engine, stats *cache.StatsCache) *InterviewsHandler {
	return &InterviewsHandler{
		reader: reader,
		engine: engine,
		stats:  stats,
	}
}

// POST /interviews
func (h *InterviewsHandler) Schedule(ctx *gin.Context) {
	var req interview.CreateInterviewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !utils.IsUUID(req.CandidateID) {
		RespondBadRequest(ctx, "candidateId must be a valid UUID", nil)
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	iv, err := h.engine.ScheduleInterview(cctx, req, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusCreated, iv)
}

// GET /interviews?candidateId=&status=
func (h *InterviewsHandler) List(ctx *gin.Context) {
	var filter interview.ListInterviewsFilter

	if id := ctx.Query("candidateId"); id != "" {
		if !utils.IsUUID(id) {
			RespondBadRequest(ctx, "candidateId must be a valid UUID", nil)
			return
		}
		filter.CandidateID = &id
	}

	if s := ctx.Query("status"); s != "" {
		st := interview.Status(s)

		if !st.IsValid() {
			RespondBadRequest(ctx, "unknown status filter", gin.H{"status": s})
			return
		}

		filter.Status = &st
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.reader.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list interviews")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GET /interviews/:id
func (h *InterviewsHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "interview id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	iv, err := h.reader.GetByID(cctx, id)

	if RespondPipelineError(ctx, err) {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, iv)
}

// POST /interviews/:id/complete
func (h *InterviewsHandler) Complete(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "interview id must be a valid UUID", nil)
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	iv, err := h.engine.CompleteInterview(cctx, id, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, iv)
}

type recordResultRequest struct {
	Result interview.Status `json:"result" binding:"required,oneof=Passed Rejected"`
}

// POST /interviews/:id/result
//
// Writes the interview result first and then the derived candidate status;
// a retry after a torn write repairs the candidate side only.
func (h *InterviewsHandler) RecordResult(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "interview id must be a valid UUID", nil)
		return
	}

	var req recordResultRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	iv, cand, err := h.engine.RecordResult(cctx, id, req.Result, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	h.stats.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"interview": iv,
		"candidate": cand,
	})
}

// POST /interviews/:id/cancel
func (h *InterviewsHandler) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "interview id must be a valid UUID", nil)
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	iv, err := h.engine.CancelInterview(cctx, id, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, iv)
}

type bulkScheduleRequest struct {
	CandidateIDs []string `json:"candidateIds" binding:"required,min=1,max=200"`
	Date         string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string   `json:"time" binding:"required,datetime=15:04"`
	Type         string   `json:"type" binding:"required,min=2,max=60"`
}

// POST /interviews/bulk
//
// Best-effort fan-out: per-candidate outcomes come back in input order, one
// failure never aborts the rest.
func (h *InterviewsHandler) BulkSchedule(ctx *gin.Context) {
	var req bulkScheduleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(15 * time.Second)
	defer cancel()

	results, err := h.engine.BulkSchedule(cctx, req.CandidateIDs, req.Date, req.Time, req.Type, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	scheduled := 0

	for _, r := range results {
		if r.OK {
			scheduled++
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results":   results,
		"scheduled": scheduled,
		"failed":    len(results) - scheduled,
	})
}
