package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/devsync89/jobportal/internal/cache"
	"github.com/devsync89/jobportal/internal/config"
	"github.com/gin-gonic/gin"
)

type StatsReader interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// StatsHandler serves the dashboard counts, redis-cached with a short TTL.
type StatsHandler struct {
	repo  StatsReader
	cache *cache.StatsCache
}

func NewStatsHandler(repo StatsReader, statsCache *cache.StatsCache) *StatsHandler {
	return &StatsHandler{repo: repo, cache: statsCache}
}

// GET /admin/stats
func (h *StatsHandler) CandidateStats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if counts, ok := h.cache.Get(cctx); ok {
		ctx.JSON(http.StatusOK, gin.H{
			"byStatus": counts,
			"cached":   true,
		})
		return
	}

	counts, err := h.repo.CountByStatus(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	h.cache.Set(cctx, counts)

	ctx.JSON(http.StatusOK, gin.H{
		"byStatus": counts,
		"cached":   false,
	})
}
