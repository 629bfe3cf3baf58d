package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
)

type commentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	ListByGrievance(ctx context.Context, grievanceID string) ([]models.Comment, error)
}

type grievanceFinder interface {
	FindByID(ctx context.Context, id string) (*models.Grievance, error)
}

// CommentService manages the append-only comment thread attached to a
// grievance. Anyone who can see the grievance may comment; nobody may edit
// or delete.
type CommentService struct {
	comments   commentRepository
	grievances grievanceFinder
	logger     *zap.Logger
	now        func() time.Time
}

// NewCommentService constructs the service.
func NewCommentService(comments commentRepository, grievances grievanceFinder, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{comments: comments, grievances: grievances, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Add appends a comment to a grievance thread. The author's name and role
// are snapshotted onto the comment at post time.
func (s *CommentService) Add(ctx context.Context, principal models.Principal, grievanceID, text string) (*models.Comment, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "comment text must not be empty")
	}

	grievance, err := s.loadGrievance(ctx, grievanceID)
	if err != nil {
		return nil, err
	}
	if !CanView(principal, *grievance) {
		return nil, appErrors.ErrForbidden
	}

	comment := &models.Comment{
		GrievanceID: grievanceID,
		UserID:      principal.ID,
		AuthorName:  principal.FullName,
		AuthorRole:  principal.Role,
		Comment:     text,
		CreatedAt:   s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store comment")
	}

	s.logger.Info("comment added", zap.String("grievance_id", grievanceID))
	return comment, nil
}

// List returns the thread for a grievance ordered oldest first. The
// visibility check fails closed with Forbidden rather than an empty list so
// callers can tell "no comments" apart from "not permitted".
func (s *CommentService) List(ctx context.Context, principal models.Principal, grievanceID string) ([]models.Comment, error) {
	if principal.ID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	grievance, err := s.loadGrievance(ctx, grievanceID)
	if err != nil {
		return nil, err
	}
	if !CanView(principal, *grievance) {
		return nil, appErrors.ErrForbidden
	}

	comments, err := s.comments.ListByGrievance(ctx, grievanceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load comments")
	}

	// The repository already orders by created_at; the stable sort keeps
	// insertion order on equal timestamps whatever the store returned.
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *CommentService) loadGrievance(ctx context.Context, id string) (*models.Grievance, error) {
	grievance, err := s.grievances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grievance not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load grievance")
	}
	return grievance, nil
}
