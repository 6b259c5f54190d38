package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrRoleAssignmentFailed = errors.New("role assignment failed")

type RoleService struct {
	db *database.DB
}

func NewRoleService(db *database.DB) *RoleService {
	return &RoleService{db: db}
}

// Grant assigns a role to a user exactly once. It inserts unconditionally and
// lets the UNIQUE(user_id, role) constraint resolve races: a duplicate-key
// rejection means another call (or an earlier one) already granted the role,
// which is reported as already=true with no error. There is deliberately no
// check-then-insert sequence here.
func (s *RoleService) Grant(ctx context.Context, userID uuid.UUID, role string) (*models.UserRole, bool, error) {
	var ur models.UserRole
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		RETURNING id, user_id, role, created_at
	`, userID, role).Scan(&ur.ID, &ur.UserID, &ur.Role, &ur.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrRoleAssignmentFailed, err)
	}
	return &ur, false, nil
}

// BecomeSeller grants the seller role, tolerating repeated and concurrent
// invocations for the same user.
func (s *RoleService) BecomeSeller(ctx context.Context, userID uuid.UUID) (*models.UserRole, bool, error) {
	return s.Grant(ctx, userID, models.RoleSeller)
}

func (s *RoleService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`, userID, role).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *RoleService) ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT role FROM user_roles WHERE user_id = $1 ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
