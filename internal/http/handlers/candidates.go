package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devsync89/jobportal/internal/cache"
	"github.com/devsync89/jobportal/internal/config"
	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/http/middlewares"
	"github.com/devsync89/jobportal/internal/importer"
	"github.com/devsync89/jobportal/internal/pipeline"
	"github.com/devsync89/jobportal/internal/selection"
	"github.com/devsync89/jobportal/internal/utils"
	"github.com/gin-gonic/gin"
)

type CandidatesRepository interface {
	Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error)
	GetByID(ctx context.Context, id string) (candidate.Candidate, error)
	GetByUID(ctx context.Context, uid string) (candidate.Candidate, error)
	List(ctx context.Context, filter candidate.ListCandidatesFilter) ([]candidate.Candidate, int, error)
	Update(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error)
	Delete(ctx context.Context, id string) error
}

type UpcomingInterviewsReader interface {
	ScheduledCandidateIDs(ctx context.Context) (map[string]bool, error)
}

type CandidatesHandler struct {
	repo     CandidatesRepository
	upcoming UpcomingInterviewsReader
	engine   *pipeline.Engine
	stats    *cache.StatsCache
}

func NewCandidatesHandler(repo CandidatesRepository, upcoming UpcomingInterviewsReader, engine *pipeline.Engine, stats *cache.StatsCache) *CandidatesHandler {
	return &CandidatesHandler{
		repo:     repo,
		upcoming: upcoming,
		engine:   engine,
		stats:    stats,
	}
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}

	n, err := strconv.Atoi(s)

	if err != nil {
		return fallback
	}

	return n
}

// POST /candidates
func (h *CandidatesHandler) Create(ctx *gin.Context) {
	var req candidate.CreateCandidateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// UID is assigned by the self-signup flow only, never by staff input
	req.UID = ""

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create candidate")
		return
	}

	h.stats.Invalidate(cctx)

	ctx.JSON(http.StatusCreated, c)
}

// GET /candidates?status=&q=&limit=&offset=
func (h *CandidatesHandler) List(ctx *gin.Context) {
	filter, ok := listFilterFromQuery(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, total, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list candidates")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
		"total": total,
	})
}

func listFilterFromQuery(ctx *gin.Context) (candidate.ListCandidatesFilter, bool) {
	filter := candidate.ListCandidatesFilter{
		Limit:  parseIntDefault(ctx.Query("limit"), 0),
		Offset: parseIntDefault(ctx.Query("offset"), 0),
	}

	if filter.Limit < 0 || filter.Limit > 500 || filter.Offset < 0 {
		RespondBadRequest(ctx, "limit must be 0..500 and offset >= 0", nil)
		return candidate.ListCandidatesFilter{}, false
	}

	if s := ctx.Query("status"); s != "" {
		st := candidate.Status(s)

		if !st.IsValid() {
			RespondBadRequest(ctx, "unknown status filter", gin.H{"status": s})
			return candidate.ListCandidatesFilter{}, false
		}

		filter.Status = &st
	}

	if q := strings.TrimSpace(ctx.Query("q")); q != "" {
		filter.Query = &q
	}

	return filter, true
}

// GET /candidates/:id
func (h *CandidatesHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if RespondPipelineError(ctx, err) {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, c)
}

// GET /candidates/me  (candidate role: own record via account link)
func (h *CandidatesHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByUID(cctx, userID)

	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			RespondNotFound(ctx, "No candidate record linked to this account")
			return
		}

		RespondInternal(ctx, "Could not fetch candidate")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

// PUT /candidates/:id
func (h *CandidatesHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	var req candidate.UpdateCandidateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, id, req)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, c)
}

// DELETE /candidates/:id
func (h *CandidatesHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if RespondPipelineError(ctx, err) {
		return
	}

	h.stats.Invalidate(cctx)

	ctx.Status(http.StatusNoContent)
}

type overrideStatusRequest struct {
	Status candidate.Status `json:"status" binding:"required"`
}

// POST /candidates/:id/status  (direct override, bypasses the decision table)
func (h *CandidatesHandler) OverrideStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "candidate id must be a valid UUID", nil)
		return
	}

	var req overrideStatusRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, _ := middlewares.RoleFromContext(ctx)

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.engine.UpdateCandidateStatus(cctx, id, req.Status, role)

	if RespondPipelineError(ctx, err) {
		return
	}

	h.stats.Invalidate(cctx)

	ctx.JSON(http.StatusOK, c)
}

// POST /candidates/import  (CSV upload, multipart "file" field or raw body)
func (h *CandidatesHandler) Import(ctx *gin.Context) {
	reader := ctx.Request.Body

	if file, _, err := ctx.Request.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	res, err := importer.ReadCSV(reader)

	if err != nil {
		RespondBadRequest(ctx, "Could not parse upload", gin.H{"reason": err.Error()})
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	created := make([]candidate.Candidate, 0, len(res.Candidates))
	rowErrors := res.Errors

	for i, req := range res.Candidates {
		c, err := h.repo.Create(cctx, req)

		if err != nil {
			rowErrors = append(rowErrors, importer.RowError{
				Row:     i + 1,
				Message: "could not persist row: " + err.Error(),
			})
			continue
		}

		created = append(created, c)
	}

	h.stats.Invalidate(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"imported": len(created),
		"items":    created,
		"errors":   rowErrors,
	})
}

// GET /candidates/phones/export?upcomingOnly=true&format=csv
func (h *CandidatesHandler) ExportPhones(ctx *gin.Context) {
	upcomingOnly := ctx.Query("upcomingOnly") == "true"

	filter, ok := listFilterFromQuery(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	items, _, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not export phones")
		return
	}

	var hasUpcoming func(string) bool

	if upcomingOnly {
		ids, err := h.upcoming.ScheduledCandidateIDs(cctx)

		if err != nil {
			RespondInternal(ctx, "Could not export phones")
			return
		}

		hasUpcoming = func(candidateID string) bool { return ids[candidateID] }
	}

	phones := selection.Phones(items, hasUpcoming, upcomingOnly)

	if ctx.Query("format") == "csv" {
		ctx.Header("Content-Disposition", `attachment; filename="phones.csv"`)
		ctx.Data(http.StatusOK, "text/csv", []byte("phone\n"+strings.Join(phones, "\n")+"\n"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"phones": phones,
		"count":  len(phones),
	})
}

type applyRangeRequest struct {
	Selected []string `json:"selected"`
	Start    int      `json:"start" binding:"required"`
	End      int      `json:"end" binding:"required"`
	Status   string   `json:"status"`
	Query    string   `json:"q"`
}

// POST /candidates/selection/range
//
// The range is resolved against the same ordered, filtered list the caller
// sees; the response is the accumulated selection.
func (h *CandidatesHandler) ApplyRange(ctx *gin.Context) {
	var req applyRangeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	filter := candidate.ListCandidatesFilter{}

	if req.Status != "" {
		st := candidate.Status(req.Status)

		if !st.IsValid() {
			RespondBadRequest(ctx, "unknown status filter", gin.H{"status": req.Status})
			return
		}

		filter.Status = &st
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		filter.Query = &q
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	items, _, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not resolve selection")
		return
	}

	orderedIDs := make([]string, len(items))

	for i, c := range items {
		orderedIDs[i] = c.ID
	}

	selected, err := selection.ApplyRange(orderedIDs, req.Selected, req.Start, req.End)

	if RespondPipelineError(ctx, err) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"selected": selected,
		"count":    len(selected),
	})
}
