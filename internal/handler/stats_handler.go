package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grievance-desk/internal/middleware"
	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
	"github.com/noah-isme/grievance-desk/pkg/response"
)

type statsService interface {
	Overview(ctx context.Context, principal models.Principal) (*models.AggregateStats, bool, error)
}

// StatsHandler wires the aggregation engine to HTTP endpoints.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(svc statsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Overview godoc
// @Summary Aggregate statistics over the caller's visible grievances
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	start := time.Now()
	stats, cacheHit, err := h.service.Overview(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, stats, nil, meta)
}
