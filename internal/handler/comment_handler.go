package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
	"github.com/noah-isme/grievance-desk/pkg/response"
)

type commentService interface {
	Add(ctx context.Context, principal models.Principal, grievanceID, text string) (*models.Comment, error)
	List(ctx context.Context, principal models.Principal, grievanceID string) ([]models.Comment, error)
}

// CommentHandler wires the comment thread service to HTTP endpoints.
type CommentHandler struct {
	service commentService
}

// NewCommentHandler constructs the handler.
func NewCommentHandler(svc commentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// Add godoc
// @Summary Post a comment on a grievance
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Grievance ID"
// @Param payload body object{comment=string} true "Comment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grievances/{id}/comments [post]
func (h *CommentHandler) Add(c *gin.Context) {
	var payload struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}

	comment, err := h.service.Add(c.Request.Context(), principalFromContext(c), c.Param("id"), payload.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment)
}

// List godoc
// @Summary List the comment thread of a grievance
// @Tags Comments
// @Produce json
// @Param id path string true "Grievance ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grievances/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.service.List(c.Request.Context(), principalFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, comments, nil)
}
