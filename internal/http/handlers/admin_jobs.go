package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/domain/job"
	"github.com/devsync89/jobportal/internal/repo/postgres"
	"github.com/devsync89/jobportal/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminJobsRepo interface {
	List(ctx context.Context, status *string, limit, offset int) ([]job.Job, error)
	GetByID(ctx context.Context, id string) (job.Job, error)
	Retry(ctx context.Context, id string) error
}

type AdminJobsHandler struct {
	repo AdminJobsRepo
}

func NewAdminJobsHandler(repo AdminJobsRepo) *AdminJobsHandler {
	return &AdminJobsHandler{repo: repo}
}

// GET /admin/jobs?status=failed&limit=50&offset=0
func (h *AdminJobsHandler) List(ctx *gin.Context) {
	limit := parseIntDefault(ctx.Query("limit"), 20)
	offset := parseIntDefault(ctx.Query("offset"), 0)

	if limit < 1 || limit > 100 || offset < 0 {
		RespondBadRequest(ctx, "limit must be 1..100 and offset >= 0", nil)
		return
	}

	var statusPtr *string
	if s := ctx.Query("status"); s != "" {
		statusPtr = &s
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.List(cctx, statusPtr, limit, offset)

	if err != nil {
		RespondInternal(ctx, "Could not list jobs")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
		"items":  items,
	})
}

// GET /admin/jobs/:id
func (h *AdminJobsHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "job id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	j, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			RespondNotFound(ctx, "Job not found")
			return
		}

		RespondInternal(ctx, "Could not fetch job")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, j)
}

// POST /admin/jobs/:id/retry
func (h *AdminJobsHandler) Retry(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "job id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Retry(cctx, id)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			RespondNotFound(ctx, "Job not found")
			return
		}
		if errors.Is(err, postgres.ErrJobNotFailed) {
			RespondConflict(ctx, "job_not_failed", "Only failed jobs can be retried")
			return
		}
		RespondInternal(ctx, "Could not retry job")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"jobId":  id,
		"status": "pending",
	})
}
