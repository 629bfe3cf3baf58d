package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grievance-desk/internal/middleware"
	"github.com/noah-isme/grievance-desk/internal/models"
	"github.com/noah-isme/grievance-desk/internal/service"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
)

type fakeGrievanceSrv struct {
	grievance *models.Grievance
	list      []models.Grievance
	csv       []byte
	err       error
	lastQuery models.GrievanceQuery
	lastReq   service.CreateGrievanceRequest
	lastTrans service.TransitionRequest
}

func (f *fakeGrievanceSrv) Create(_ context.Context, _ models.Principal, req service.CreateGrievanceRequest) (*models.Grievance, error) {
	f.lastReq = req
	return f.grievance, f.err
}

func (f *fakeGrievanceSrv) List(_ context.Context, _ models.Principal, query models.GrievanceQuery) ([]models.Grievance, error) {
	f.lastQuery = query
	return f.list, f.err
}

func (f *fakeGrievanceSrv) Get(context.Context, models.Principal, string) (*models.Grievance, error) {
	return f.grievance, f.err
}

func (f *fakeGrievanceSrv) Transition(_ context.Context, _ models.Principal, _ string, req service.TransitionRequest) (*models.Grievance, error) {
	f.lastTrans = req
	return f.grievance, f.err
}

func (f *fakeGrievanceSrv) ExportCSV(context.Context, models.Principal, models.GrievanceQuery) ([]byte, error) {
	return f.csv, f.err
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

func authedContext(t *testing.T, rec *httptest.ResponseRecorder, method, target string, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "emp-1", Role: models.RoleEmployee, FullName: "Dewi Lestari"})
	return c
}

func TestGrievanceHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{grievance: &models.Grievance{ID: "g-1", Title: "Unpaid overtime"}}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPost, "/grievances",
		`{"title":"Unpaid overtime","description":"details","category":"compensation","priority":"high"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "compensation", srv.lastReq.Category)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "g-1", envelope.Data["id"])
}

func TestGrievanceHandlerCreate_InvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGrievanceHandler(&fakeGrievanceSrv{})

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPost, "/grievances", `{"title":`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGrievanceHandlerCreate_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{err: appErrors.Clone(appErrors.ErrForbidden, "privileged accounts cannot file grievances")}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPost, "/grievances",
		`{"title":"t","description":"d","category":"other"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGrievanceHandlerList_PassesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{list: []models.Grievance{{ID: "g-1"}}}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodGet, "/grievances?search=pay&status=resolved&priority=all", "")

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pay", srv.lastQuery.Search)
	assert.Equal(t, "resolved", srv.lastQuery.Status)
	assert.Equal(t, "all", srv.lastQuery.Priority)
}

func TestGrievanceHandlerTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{grievance: &models.Grievance{ID: "g-1", Status: models.StatusResolved}}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPatch, "/grievances/g-1/status",
		`{"status":"resolved","resolution":"mediated"}`)
	c.Params = gin.Params{{Key: "id", Value: "g-1"}}

	handler.Transition(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "resolved", srv.lastTrans.Status)
	assert.Equal(t, "mediated", srv.lastTrans.Resolution)
}

func TestGrievanceHandlerTransition_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{err: appErrors.Clone(appErrors.ErrNotFound, "grievance not found")}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodPatch, "/grievances/missing/status", `{"status":"under_review"}`)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Transition(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGrievanceHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGrievanceSrv{csv: []byte("id,employee\ng-1,Dewi\n")}
	handler := NewGrievanceHandler(srv)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, http.MethodGet, "/grievances/export", "")

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "g-1,Dewi")
}
