package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grievance-desk/internal/models"
)

func TestCommentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCommentRepository(db)

	mock.ExpectExec("INSERT INTO grievance_comments").
		WithArgs(sqlmock.AnyArg(), "g-1", "hr-1", "Rina Kartika", "hr", "We are reviewing this.", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	comment := &models.Comment{
		GrievanceID: "g-1",
		UserID:      "hr-1",
		AuthorName:  "Rina Kartika",
		AuthorRole:  models.RoleHR,
		Comment:     "We are reviewing this.",
	}
	require.NoError(t, repo.Create(context.Background(), comment))
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryListByGrievance_OrdersOldestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCommentRepository(db)

	base := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "grievance_id", "user_id", "author_name", "author_role", "comment", "created_at"}).
		AddRow("c-1", "g-1", "emp-1", "Dewi Lestari", "employee", "first", base).
		AddRow("c-2", "g-1", "hr-1", "Rina Kartika", "hr", "second", base.Add(time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta("FROM grievance_comments WHERE grievance_id = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs("g-1").
		WillReturnRows(rows)

	comments, err := repo.ListByGrievance(context.Background(), "g-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c-1", comments[0].ID)
	assert.Equal(t, models.RoleHR, comments[1].AuthorRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryListByGrievance_EmptyThread(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCommentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grievance_id", "user_id", "author_name", "author_role", "comment", "created_at"})
	mock.ExpectQuery(regexp.QuoteMeta("WHERE grievance_id = $1")).
		WithArgs("g-empty").
		WillReturnRows(rows)

	comments, err := repo.ListByGrievance(context.Background(), "g-empty")
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.NoError(t, mock.ExpectationsWereMet())
}
