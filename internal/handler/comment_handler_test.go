package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
)

type fakeCommentSrv struct {
	comment  *models.Comment
	comments []models.Comment
	err      error
	lastText string
	lastID   string
}

func (f *fakeCommentSrv) Add(_ context.Context, _ models.Principal, grievanceID, text string) (*models.Comment, error) {
	f.lastID = grievanceID
	f.lastText = text
	return f.comment, f.err
}

func (f *fakeCommentSrv) List(_ context.Context, _ models.Principal, grievanceID string) ([]models.Comment, error) {
	f.lastID = grievanceID
	return f.comments, f.err
}

func TestCommentHandlerAdd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCommentSrv{comment: &models.Comment{ID: "c-1", Comment: "on it"}}
	handler := NewCommentHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPost, "/grievances/g-1/comments", `{"comment":"on it"}`)
	c.Params = gin.Params{{Key: "id", Value: "g-1"}}

	handler.Add(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "g-1", srv.lastID)
	assert.Equal(t, "on it", srv.lastText)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "c-1", envelope.Data["id"])
}

func TestCommentHandlerAdd_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCommentSrv{err: appErrors.ErrForbidden}
	handler := NewCommentHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPost, "/grievances/g-1/comments", `{"comment":"hi"}`)
	c.Params = gin.Params{{Key: "id", Value: "g-1"}}

	handler.Add(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCommentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeCommentSrv{comments: []models.Comment{{ID: "c-1"}, {ID: "c-2"}}}
	handler := NewCommentHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodGet, "/grievances/g-1/comments", "")
	c.Params = gin.Params{{Key: "id", Value: "g-1"}}

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "g-1", srv.lastID)
	assert.Contains(t, rec.Body.String(), "c-2")
}
