package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// FindOrCreateFromOAuth resolves the identity-provider user to a local user
// row, creating the user and its profile together on first sign-in.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, provider, provider_id, created_at, updated_at
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`, info.Provider, info.ID).Scan(
		&user.ID, &user.Email, &user.Provider, &user.ProviderID,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == nil {
		if user.Email != info.Email {
			_, _ = s.db.Pool.Exec(ctx, `
				UPDATE users SET email = $1, updated_at = NOW()
				WHERE id = $2
			`, info.Email, user.ID)
			user.Email = info.Email
		}
		return &user, nil
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, provider, provider_id)
		VALUES ($1, $2, $3)
		RETURNING id, email, provider, provider_id, created_at, updated_at
	`, info.Email, info.Provider, info.ID).Scan(
		&user.ID, &user.Email, &user.Provider, &user.ProviderID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	firstName, lastName := splitName(info.Name)
	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (id, first_name, last_name, avatar_url)
		VALUES ($1, $2, $3, $4)
	`, user.ID, nullableString(firstName), nullableString(lastName), nullableString(info.AvatarURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, provider, provider_id, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Email, &user.Provider, &user.ProviderID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, provider, provider_id, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(
		&user.ID, &user.Email, &user.Provider, &user.ProviderID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, bio, avatar_url, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id).Scan(
		&profile.ID, &profile.FirstName, &profile.LastName,
		&profile.Bio, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, bio, avatarURL *string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			bio = COALESCE($3, bio),
			avatar_url = COALESCE($4, avatar_url),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, first_name, last_name, bio, avatar_url, created_at, updated_at
	`, firstName, lastName, bio, avatarURL, id).Scan(
		&profile.ID, &profile.FirstName, &profile.LastName,
		&profile.Bio, &profile.AvatarURL,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
