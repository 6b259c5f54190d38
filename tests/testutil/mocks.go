package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/internal/sse"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, bio, avatarURL *string) (*models.Profile, error) {
	args := m.Called(ctx, id, firstName, lastName, bio, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockRoleService mocks the RoleService
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) Grant(ctx context.Context, userID uuid.UUID, role string) (*models.UserRole, bool, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.UserRole), args.Bool(1), args.Error(2)
}

func (m *MockRoleService) BecomeSeller(ctx context.Context, userID uuid.UUID) (*models.UserRole, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.UserRole), args.Bool(1), args.Error(2)
}

func (m *MockRoleService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleService) ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDatasetService mocks the DatasetService
type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) Create(ctx context.Context, sellerID uuid.UUID, input services.CreateDatasetInput) (*models.Dataset, error) {
	args := m.Called(ctx, sellerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockDatasetService) GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockDatasetService) List(ctx context.Context, filter services.DatasetFilter) ([]models.Dataset, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dataset), args.Error(1)
}

func (m *MockDatasetService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Dataset, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dataset), args.Error(1)
}

func (m *MockDatasetService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// MockPurchaseService mocks the PurchaseService
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) Initiate(ctx context.Context, buyerID, datasetID uuid.UUID, amount float64) (*models.Purchase, error) {
	args := m.Called(ctx, buyerID, datasetID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseService) Complete(ctx context.Context, purchaseID uuid.UUID) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*models.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseService) GetByBuyerAndDataset(ctx context.Context, buyerID, datasetID uuid.UUID) (*models.Purchase, error) {
	args := m.Called(ctx, buyerID, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Purchase), args.Error(1)
}

func (m *MockPurchaseService) HasAccess(ctx context.Context, buyerID, datasetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, buyerID, datasetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseService) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Purchase, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockPurchaseService) ListSales(ctx context.Context, sellerID uuid.UUID) ([]models.Sale, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

// MockNotificationService mocks the NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Add(ctx context.Context, userID uuid.UUID, message, notifType string) (*models.Notification, error) {
	args := m.Called(ctx, userID, message, notifType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPricingService mocks the PricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Suggest(ctx context.Context, title, description, format string, categoryID uuid.UUID) (*services.PriceSuggestion, error) {
	args := m.Called(ctx, title, description, format, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PriceSuggestion), args.Error(1)
}

// MockReviewService mocks the ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListForDataset(ctx context.Context, datasetID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) AverageRating(ctx context.Context, datasetID uuid.UUID) (float64, int, error) {
	args := m.Called(ctx, datasetID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendSaleNotice(to, datasetTitle string, amount float64) error {
	args := m.Called(to, datasetTitle, amount)
	return args.Error(0)
}

// MockObjectStorage mocks the object storage backend
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) DownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) KeyFor(fileURL string) (string, bool) {
	args := m.Called(fileURL)
	return args.String(0), args.Bool(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockNotificationHub mocks the SSE hub
type MockNotificationHub struct {
	mock.Mock
}

func (m *MockNotificationHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockNotificationHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockNotificationHub) BroadcastNotification(userID uuid.UUID, notification *models.Notification) {
	m.Called(userID, notification)
}
