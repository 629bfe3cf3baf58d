package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
	"github.com/noah-isme/grievance-desk/pkg/export"
)

const statsCachePattern = "stats:overview:*"

type grievanceRepository interface {
	Create(ctx context.Context, g *models.Grievance) error
	FindByID(ctx context.Context, id string) (*models.Grievance, error)
	ListAll(ctx context.Context) ([]models.Grievance, error)
	UpdateStatus(ctx context.Context, id string, status models.GrievanceStatus, resolution *string, resolvedAt *time.Time, updatedAt time.Time) error
}

// GrievanceService implements grievance filing, listing and lifecycle
// transitions. Every operation takes the acting principal explicitly.
type GrievanceService struct {
	repo      grievanceRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGrievanceService constructs the service.
func NewGrievanceService(repo grievanceRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *GrievanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrievanceService{repo: repo, cache: cache, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// CreateGrievanceRequest describes the filing payload.
type CreateGrievanceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Priority    string `json:"priority"`
}

// TransitionRequest describes a lifecycle transition payload.
type TransitionRequest struct {
	Status     string `json:"status" validate:"required"`
	Resolution string `json:"resolution"`
}

// Create files a new grievance on behalf of the acting employee. Privileged
// principals review grievances, they do not file them.
func (s *GrievanceService) Create(ctx context.Context, principal models.Principal, req CreateGrievanceRequest) (*models.Grievance, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if principal.Privileged() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "privileged accounts cannot file grievances")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grievance payload")
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title and description must not be empty")
	}

	category := models.GrievanceCategory(req.Category)
	if !category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grievance category")
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.GrievancePriority(req.Priority)
		if !priority.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grievance priority")
		}
	}

	grievance := &models.Grievance{
		EmployeeID:  principal.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Department:  principal.Department,
		Status:      models.StatusSubmitted,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, grievance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store grievance")
	}

	s.invalidateStats(ctx)
	s.logger.Info("grievance filed",
		zap.String("grievance_id", grievance.ID),
		zap.String("category", string(grievance.Category)),
		zap.String("priority", string(grievance.Priority)))
	grievance.EmployeeName = principal.FullName
	return grievance, nil
}

// List returns the grievances visible to the principal for the given query,
// ordered most recent first.
func (s *GrievanceService) List(ctx context.Context, principal models.Principal, query models.GrievanceQuery) ([]models.Grievance, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if query.Status != "" && query.Status != models.FilterAll && !models.GrievanceStatus(query.Status).Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "unknown status filter")
	}
	if query.Priority != "" && query.Priority != models.FilterAll && !models.GrievancePriority(query.Priority).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown priority filter")
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load grievances")
	}

	return ApplyQuery(principal, all, query), nil
}

// Get loads a single grievance, applying the visibility filter before it
// reaches the caller.
func (s *GrievanceService) Get(ctx context.Context, principal models.Principal, id string) (*models.Grievance, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	grievance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grievance not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load grievance")
	}
	if !CanView(principal, *grievance) {
		return nil, appErrors.ErrForbidden
	}
	return grievance, nil
}

// Transition validates and applies a lifecycle transition. The workflow is
// deliberately permissive: any non-terminal state may move to any other
// state, and closed is reachable from anywhere. Resolved and closed require
// resolution text; the first resolved_at is retained across repeated
// resolve/close transitions. Reopening never clears a prior resolution.
func (s *GrievanceService) Transition(ctx context.Context, principal models.Principal, id string, req TransitionRequest) (*models.Grievance, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if !principal.Privileged() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admin or hr may update grievance status")
	}

	newStatus := models.GrievanceStatus(req.Status)
	if !newStatus.Valid() {
		return nil, appErrors.ErrInvalidStatus
	}

	grievance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grievance not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load grievance")
	}

	updated := *grievance
	updated.Status = newStatus

	if newStatus.RequiresResolution() {
		resolution := strings.TrimSpace(req.Resolution)
		if resolution == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "resolution text is required to resolve or close a grievance")
		}
		updated.Resolution = &resolution
		if updated.ResolvedAt == nil {
			ts := s.now()
			updated.ResolvedAt = &ts
		}
	}

	updated.UpdatedAt = s.now()
	if err := s.repo.UpdateStatus(ctx, id, updated.Status, updated.Resolution, updated.ResolvedAt, updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grievance not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to update grievance")
	}

	s.invalidateStats(ctx)
	s.logger.Info("grievance transitioned",
		zap.String("grievance_id", id),
		zap.String("from", string(grievance.Status)),
		zap.String("to", string(newStatus)))
	return &updated, nil
}

// ExportCSV renders the principal's visible record set for the given query
// as CSV, using the same orchestrator path as List.
func (s *GrievanceService) ExportCSV(ctx context.Context, principal models.Principal, query models.GrievanceQuery) ([]byte, error) {
	grievances, err := s.List(ctx, principal, query)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"id", "employee", "department", "title", "category", "priority", "status", "created_at", "resolved_at"},
		Rows:    make([]map[string]string, 0, len(grievances)),
	}
	for _, g := range grievances {
		row := map[string]string{
			"id":         g.ID,
			"employee":   g.EmployeeName,
			"department": g.Department,
			"title":      g.Title,
			"category":   string(g.Category),
			"priority":   string(g.Priority),
			"status":     string(g.Status),
			"created_at": g.CreatedAt.Format(time.RFC3339),
		}
		if g.ResolvedAt != nil {
			row["resolved_at"] = g.ResolvedAt.Format(time.RFC3339)
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	payload, err := export.NewCSVExporter().Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return payload, nil
}

func (s *GrievanceService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
