package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grievance-desk/internal/models"
	"github.com/noah-isme/grievance-desk/internal/service"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
	"github.com/noah-isme/grievance-desk/pkg/response"
)

type grievanceService interface {
	Create(ctx context.Context, principal models.Principal, req service.CreateGrievanceRequest) (*models.Grievance, error)
	List(ctx context.Context, principal models.Principal, query models.GrievanceQuery) ([]models.Grievance, error)
	Get(ctx context.Context, principal models.Principal, id string) (*models.Grievance, error)
	Transition(ctx context.Context, principal models.Principal, id string, req service.TransitionRequest) (*models.Grievance, error)
	ExportCSV(ctx context.Context, principal models.Principal, query models.GrievanceQuery) ([]byte, error)
}

// GrievanceHandler wires the grievance service to HTTP endpoints.
type GrievanceHandler struct {
	service grievanceService
}

// NewGrievanceHandler constructs the handler.
func NewGrievanceHandler(svc grievanceService) *GrievanceHandler {
	return &GrievanceHandler{service: svc}
}

// Create godoc
// @Summary File a new grievance
// @Tags Grievances
// @Accept json
// @Produce json
// @Param payload body service.CreateGrievanceRequest true "Grievance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /grievances [post]
func (h *GrievanceHandler) Create(c *gin.Context) {
	var req service.CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grievance payload"))
		return
	}

	grievance, err := h.service.Create(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, grievance)
}

// List godoc
// @Summary List visible grievances
// @Tags Grievances
// @Produce json
// @Param search query string false "Case-insensitive substring over title and description"
// @Param status query string false "Status filter, 'all' disables"
// @Param priority query string false "Priority filter, 'all' disables"
// @Success 200 {object} response.Envelope
// @Router /grievances [get]
func (h *GrievanceHandler) List(c *gin.Context) {
	query := queryFromRequest(c)

	grievances, err := h.service.List(c.Request.Context(), principalFromContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, grievances, nil)
}

// Get godoc
// @Summary Fetch a single grievance
// @Tags Grievances
// @Produce json
// @Param id path string true "Grievance ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grievances/{id} [get]
func (h *GrievanceHandler) Get(c *gin.Context) {
	grievance, err := h.service.Get(c.Request.Context(), principalFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, grievance, nil)
}

// Transition godoc
// @Summary Apply a lifecycle transition
// @Tags Grievances
// @Accept json
// @Produce json
// @Param id path string true "Grievance ID"
// @Param payload body service.TransitionRequest true "Transition payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grievances/{id}/status [patch]
func (h *GrievanceHandler) Transition(c *gin.Context) {
	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transition payload"))
		return
	}

	grievance, err := h.service.Transition(c.Request.Context(), principalFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, grievance, nil)
}

// Export godoc
// @Summary Export visible grievances as CSV
// @Tags Grievances
// @Produce text/csv
// @Param search query string false "Case-insensitive substring over title and description"
// @Param status query string false "Status filter, 'all' disables"
// @Param priority query string false "Priority filter, 'all' disables"
// @Success 200 {string} string "CSV payload"
// @Router /grievances/export [get]
func (h *GrievanceHandler) Export(c *gin.Context) {
	payload, err := h.service.ExportCSV(c.Request.Context(), principalFromContext(c), queryFromRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("grievances-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

func queryFromRequest(c *gin.Context) models.GrievanceQuery {
	return models.GrievanceQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
	}
}
