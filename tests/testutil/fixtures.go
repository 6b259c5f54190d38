package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with a profile row
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Provider:   "github",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, provider, provider_id)
		VALUES ($1, $2, $3)
		RETURNING id, email, provider, provider_id, created_at, updated_at
	`, user.Email, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.Provider, &user.ProviderID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO profiles (id) VALUES ($1)`, user.ID)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// GrantRole assigns a role to a user directly
func (f *Fixtures) GrantRole(t *testing.T, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`, user.ID, role)
	if err != nil {
		t.Fatalf("failed to grant role: %v", err)
	}
}

// CreateCategory creates a test category
func (f *Fixtures) CreateCategory(t *testing.T, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, description, created_at
	`, name).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return category
}

// CreateDataset creates a test dataset owned by the given seller
func (f *Fixtures) CreateDataset(t *testing.T, seller *models.User, opts ...DatasetOption) *models.Dataset {
	t.Helper()
	f.counter++

	dataset := &models.Dataset{
		SellerID:    seller.ID,
		Title:       fmt.Sprintf("Test Dataset %d", f.counter),
		Description: fmt.Sprintf("Description for dataset %d", f.counter),
		Price:       19.99,
		Format:      models.FormatCSV,
		FileURL:     fmt.Sprintf("http://localhost:9000/datasets/%s/file%d.csv", seller.ID, f.counter),
	}

	for _, opt := range opts {
		opt(dataset)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO datasets (seller_id, category_id, title, description, price, format, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, seller_id, category_id, title, description, price, format, file_url, created_at, updated_at
	`, dataset.SellerID, dataset.CategoryID, dataset.Title, dataset.Description,
		dataset.Price, dataset.Format, dataset.FileURL).Scan(
		&dataset.ID, &dataset.SellerID, &dataset.CategoryID, &dataset.Title,
		&dataset.Description, &dataset.Price, &dataset.Format, &dataset.FileURL,
		&dataset.CreatedAt, &dataset.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create dataset: %v", err)
	}

	return dataset
}

// DatasetOption configures a test dataset
type DatasetOption func(*models.Dataset)

// WithTitle sets the dataset's title
func WithTitle(title string) DatasetOption {
	return func(d *models.Dataset) {
		d.Title = title
	}
}

// WithPrice sets the dataset's price
func WithPrice(price float64) DatasetOption {
	return func(d *models.Dataset) {
		d.Price = price
	}
}

// WithFormat sets the dataset's format
func WithFormat(format string) DatasetOption {
	return func(d *models.Dataset) {
		d.Format = format
	}
}

// WithCategory sets the dataset's category
func WithCategory(category *models.Category) DatasetOption {
	return func(d *models.Dataset) {
		d.CategoryID = &category.ID
	}
}

// CreatePurchase creates a test purchase in the given status
func (f *Fixtures) CreatePurchase(t *testing.T, buyer *models.User, dataset *models.Dataset, status string) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		BuyerID:   buyer.ID,
		DatasetID: dataset.ID,
		Amount:    dataset.Price,
		Status:    status,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO purchases (buyer_id, dataset_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, buyer_id, dataset_id, amount, status, created_at
	`, purchase.BuyerID, purchase.DatasetID, purchase.Amount, purchase.Status).Scan(
		&purchase.ID, &purchase.BuyerID, &purchase.DatasetID,
		&purchase.Amount, &purchase.Status, &purchase.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create purchase: %v", err)
	}

	return purchase
}

// CreateNotification creates a test notification
func (f *Fixtures) CreateNotification(t *testing.T, user *models.User, message, notifType string) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		UserID:  user.ID,
		Message: message,
		Type:    notifType,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, message, type, read, created_at
	`, notification.UserID, notification.Message, notification.Type).Scan(
		&notification.ID, &notification.UserID, &notification.Message,
		&notification.Type, &notification.Read, &notification.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	return notification
}

// CreateReview creates a test review
func (f *Fixtures) CreateReview(t *testing.T, user *models.User, dataset *models.Dataset, rating int) *models.Review {
	t.Helper()

	review := &models.Review{
		DatasetID: dataset.ID,
		UserID:    user.ID,
		Rating:    rating,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (dataset_id, user_id, rating)
		VALUES ($1, $2, $3)
		RETURNING id, dataset_id, user_id, rating, comment, created_at, updated_at
	`, review.DatasetID, review.UserID, review.Rating).Scan(
		&review.ID, &review.DatasetID, &review.UserID, &review.Rating,
		&review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	return review
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}
