package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grievance-desk/internal/models"
)

var employeeRowColumns = []string{
	"id", "email", "password_hash", "full_name", "role", "department",
	"active", "last_login", "created_at", "updated_at",
}

func TestEmployeeRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(employeeRowColumns).
		AddRow("emp-1", "dewi@example.com", "$2a$10$hash", "Dewi Lestari", "employee", "Engineering", true, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE email = $1 LIMIT 1")).
		WithArgs("dewi@example.com").
		WillReturnRows(rows)

	emp, err := repo.FindByEmail(context.Background(), "dewi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", emp.ID)
	assert.Equal(t, models.RoleEmployee, emp.Role)
	assert.True(t, emp.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryFindByID_NotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = $1 LIMIT 1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryUpdatePassword(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET password_hash = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("emp-1", "$2a$10$newhash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), "emp-1", "$2a$10$newhash", time.Now().UTC())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryRefreshTokenLifecycle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("rt-1", "emp-1", "opaque", sqlmock.AnyArg(), sqlmock.AnyArg(), false, "127.0.0.1", "test-agent").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateRefreshToken(context.Background(), &models.RefreshToken{
		ID:        "rt-1",
		UserID:    "emp-1",
		Token:     "opaque",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
		IPAddress: "127.0.0.1",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at", "revoked", "revoked_at", "ip_address", "user_agent"}).
		AddRow("rt-1", "emp-1", "opaque", now.Add(time.Hour), now, false, nil, "127.0.0.1", "test-agent")
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token = $1 LIMIT 1")).
		WithArgs("opaque").
		WillReturnRows(rows)

	stored, err := repo.FindRefreshToken(context.Background(), "opaque")
	require.NoError(t, err)
	assert.Equal(t, "rt-1", stored.ID)
	assert.False(t, stored.Revoked)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE id = $1")).
		WithArgs("rt-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RevokeRefreshToken(context.Background(), "rt-1", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	userID := "emp-1"
	entry := &models.AuditLog{
		UserID:   &userID,
		Action:   models.AuditActionGrievanceCreate,
		Resource: "grievance",
	}
	require.NoError(t, repo.CreateAuditLog(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
