package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
)

type fakeCommentRepo struct {
	comments  []models.Comment
	created   *models.Comment
	createErr error
	listErr   error
}

func (f *fakeCommentRepo) Create(_ context.Context, c *models.Comment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if c.ID == "" {
		c.ID = "c-created"
	}
	f.created = c
	return nil
}

func (f *fakeCommentRepo) ListByGrievance(_ context.Context, _ string) ([]models.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.comments, nil
}

type fakeGrievanceFinder struct {
	grievance *models.Grievance
	err       error
}

func (f *fakeGrievanceFinder) FindByID(_ context.Context, _ string) (*models.Grievance, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.grievance == nil {
		return nil, sql.ErrNoRows
	}
	g := *f.grievance
	return &g, nil
}

func TestCommentServiceAdd_SnapshotsAuthor(t *testing.T) {
	repo := &fakeCommentRepo{}
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(repo, finder, nil)
	posted := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return posted }

	hr := models.Principal{ID: "hr-1", Role: models.RoleHR, FullName: "Rina Kartika"}
	comment, err := svc.Add(context.Background(), hr, "g-1", "  We are reviewing this.  ")

	require.NoError(t, err)
	assert.Equal(t, "We are reviewing this.", comment.Comment)
	assert.Equal(t, "hr-1", comment.UserID)
	assert.Equal(t, "Rina Kartika", comment.AuthorName)
	assert.Equal(t, models.RoleHR, comment.AuthorRole)
	assert.Equal(t, posted, comment.CreatedAt)
	require.NotNil(t, repo.created)
}

func TestCommentServiceAdd_EmptyText(t *testing.T) {
	svc := NewCommentService(&fakeCommentRepo{}, &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}, nil)

	_, err := svc.Add(context.Background(), models.Principal{ID: "emp-1", Role: models.RoleEmployee}, "g-1", "   ")
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestCommentServiceAdd_RestrictedNonOwnerRejected(t *testing.T) {
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(&fakeCommentRepo{}, finder, nil)

	_, err := svc.Add(context.Background(), models.Principal{ID: "emp-2", Role: models.RoleEmployee}, "g-1", "hello")
	assertErrorCode(t, err, appErrors.ErrForbidden.Code)
}

func TestCommentServiceAdd_GrievanceNotFound(t *testing.T) {
	svc := NewCommentService(&fakeCommentRepo{}, &fakeGrievanceFinder{}, nil)

	_, err := svc.Add(context.Background(), models.Principal{ID: "emp-1", Role: models.RoleEmployee}, "missing", "hello")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestCommentServiceList_OrderedOldestFirst(t *testing.T) {
	base := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	repo := &fakeCommentRepo{comments: []models.Comment{
		{ID: "c-2", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "c-1", CreatedAt: base},
		{ID: "c-3", CreatedAt: base.Add(5 * time.Minute)},
	}}
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(repo, finder, nil)

	comments, err := svc.List(context.Background(), models.Principal{ID: "emp-1", Role: models.RoleEmployee}, "g-1")

	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "c-1", comments[0].ID)
	assert.Equal(t, "c-2", comments[1].ID)
	assert.Equal(t, "c-3", comments[2].ID)
}

func TestCommentServiceList_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	ts := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	repo := &fakeCommentRepo{comments: []models.Comment{
		{ID: "c-1", CreatedAt: ts},
		{ID: "c-2", CreatedAt: ts},
		{ID: "c-3", CreatedAt: ts},
	}}
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(repo, finder, nil)

	comments, err := svc.List(context.Background(), models.Principal{ID: "emp-1", Role: models.RoleEmployee}, "g-1")

	require.NoError(t, err)
	assert.Equal(t, "c-1", comments[0].ID)
	assert.Equal(t, "c-2", comments[1].ID)
	assert.Equal(t, "c-3", comments[2].ID)
}

func TestCommentServiceList_FailsClosedForNonOwner(t *testing.T) {
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(&fakeCommentRepo{}, finder, nil)

	_, err := svc.List(context.Background(), models.Principal{ID: "emp-2", Role: models.RoleEmployee}, "g-1")
	assertErrorCode(t, err, appErrors.ErrForbidden.Code)
}

func TestCommentServiceList_StoreFailure(t *testing.T) {
	repo := &fakeCommentRepo{listErr: errors.New("connection reset")}
	finder := &fakeGrievanceFinder{grievance: &models.Grievance{ID: "g-1", EmployeeID: "emp-1"}}
	svc := NewCommentService(repo, finder, nil)

	_, err := svc.List(context.Background(), models.Principal{ID: "adm-1", Role: models.RoleAdmin}, "g-1")
	assertErrorCode(t, err, appErrors.ErrUpstream.Code)
}
