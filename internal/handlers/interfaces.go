package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/internal/sse"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, bio, avatarURL *string) (*models.Profile, error)
}

// RoleServiceInterface defines the methods used by handlers from RoleService
type RoleServiceInterface interface {
	Grant(ctx context.Context, userID uuid.UUID, role string) (*models.UserRole, bool, error)
	BecomeSeller(ctx context.Context, userID uuid.UUID) (*models.UserRole, bool, error)
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// DatasetServiceInterface defines the methods used by handlers from DatasetService
type DatasetServiceInterface interface {
	Create(ctx context.Context, sellerID uuid.UUID, input services.CreateDatasetInput) (*models.Dataset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	List(ctx context.Context, filter services.DatasetFilter) ([]models.Dataset, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Dataset, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// PurchaseServiceInterface defines the methods used by handlers from PurchaseService
type PurchaseServiceInterface interface {
	Initiate(ctx context.Context, buyerID, datasetID uuid.UUID, amount float64) (*models.Purchase, error)
	Complete(ctx context.Context, purchaseID uuid.UUID) error
	GetByID(ctx context.Context, purchaseID uuid.UUID) (*models.Purchase, error)
	GetByBuyerAndDataset(ctx context.Context, buyerID, datasetID uuid.UUID) (*models.Purchase, error)
	HasAccess(ctx context.Context, buyerID, datasetID uuid.UUID) (bool, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Purchase, error)
	ListSales(ctx context.Context, sellerID uuid.UUID) ([]models.Sale, error)
}

// NotificationServiceInterface defines the methods used by handlers from NotificationService
type NotificationServiceInterface interface {
	Add(ctx context.Context, userID uuid.UUID, message, notifType string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

// PricingServiceInterface defines the methods used by handlers from PricingService
type PricingServiceInterface interface {
	Suggest(ctx context.Context, title, description, format string, categoryID uuid.UUID) (*services.PriceSuggestion, error)
}

// ReviewServiceInterface defines the methods used by handlers from ReviewService
type ReviewServiceInterface interface {
	ListForDataset(ctx context.Context, datasetID uuid.UUID) ([]models.Review, error)
	AverageRating(ctx context.Context, datasetID uuid.UUID) (float64, int, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendSaleNotice(to, datasetTitle string, amount float64) error
}

// NotificationHubInterface defines the methods used by handlers from the SSE hub
type NotificationHubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	BroadcastNotification(userID uuid.UUID, notification *models.Notification)
}
