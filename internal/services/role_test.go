package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoleService(t *testing.T) (*RoleService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewRoleService(db), mock
}

func TestRoleService_Grant_New(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()
	grantID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "role", "created_at"}).
		AddRow(grantID, userID, models.RoleSeller, now)

	mock.ExpectQuery(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleSeller).
		WillReturnRows(rows)

	grant, already, err := svc.Grant(ctx, userID, models.RoleSeller)

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, grantID, grant.ID)
	assert.Equal(t, userID, grant.UserID)
	assert.Equal(t, models.RoleSeller, grant.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleService_Grant_Duplicate(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleSeller).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	grant, already, err := svc.Grant(ctx, userID, models.RoleSeller)

	require.NoError(t, err)
	assert.True(t, already)
	assert.Nil(t, grant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleService_Grant_OtherError(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleSeller).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	grant, already, err := svc.Grant(ctx, userID, models.RoleSeller)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoleAssignmentFailed)
	assert.False(t, already)
	assert.Nil(t, grant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleService_BecomeSeller(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()
	grantID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "user_id", "role", "created_at"}).
		AddRow(grantID, userID, models.RoleSeller, now)

	mock.ExpectQuery(`INSERT INTO user_roles`).
		WithArgs(userID, models.RoleSeller).
		WillReturnRows(rows)

	grant, already, err := svc.BecomeSeller(ctx, userID)

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, models.RoleSeller, grant.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleService_HasRole(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID, models.RoleSeller).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := svc.HasRole(ctx, userID, models.RoleSeller)

	require.NoError(t, err)
	assert.True(t, has)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleService_ListRoles(t *testing.T) {
	svc, mock := setupRoleService(t)
	ctx := context.Background()
	userID := uuid.New()

	rows := pgxmock.NewRows([]string{"role"}).
		AddRow(models.RoleBuyer).
		AddRow(models.RoleSeller)

	mock.ExpectQuery(`SELECT role FROM user_roles`).
		WithArgs(userID).
		WillReturnRows(rows)

	roles, err := svc.ListRoles(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleBuyer, models.RoleSeller}, roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}
