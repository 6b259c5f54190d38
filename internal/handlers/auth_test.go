package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/oauth"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/inspire-dataserver/data-share-hub/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *testutil.MockJWTService, *AuthHandler) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockTokenService := new(testutil.MockTokenService)
	mockJWTService := new(testutil.MockJWTService)

	cfg := &config.Config{
		FrontendCallbackURL: "http://localhost:3000/auth/callback",
	}

	handler := &AuthHandler{
		cfg:          cfg,
		providers:    make(map[string]oauth.Provider),
		userService:  mockUserService,
		tokenService: mockTokenService,
		jwtService:   mockJWTService,
	}

	return mockUserService, mockTokenService, mockJWTService, handler
}

func TestAuthHandler_ExchangeCode_Success(t *testing.T) {
	mockUserService, mockTokenService, mockJWTService, handler := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{
		ID:       userID,
		Email:    "test@example.com",
		Provider: "github",
	}

	tokenPair := &services.TokenPair{
		AccessToken:  "access-token-123",
		RefreshToken: "refresh-token-456",
		ExpiresIn:    900,
	}

	authCode := "test-auth-code"
	handler.authCodes.Store(authCode, authCodeData{
		userID:    userID,
		expiresAt: time.Now().Add(30 * time.Second),
	})

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockJWTService.On("GenerateTokenPair", userID, "test@example.com").Return(tokenPair, nil)
	mockJWTService.On("RefreshExpiry").Return(7 * 24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/exchange", handler.ExchangeCode)

	req := httptest.NewRequest(http.MethodPost, "/auth/exchange",
		jsonBody(t, dto.ExchangeCodeRequest{Code: authCode}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "access-token-123", response.AccessToken)
	assert.Equal(t, "refresh-token-456", response.RefreshToken)
	assert.Equal(t, int64(900), response.ExpiresIn)

	mockUserService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_ExchangeCode_InvalidCode(t *testing.T) {
	_, _, _, handler := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/exchange", handler.ExchangeCode)

	req := httptest.NewRequest(http.MethodPost, "/auth/exchange",
		jsonBody(t, dto.ExchangeCodeRequest{Code: "invalid-code"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired code")
}

func TestAuthHandler_ExchangeCode_ExpiredCode(t *testing.T) {
	_, _, _, handler := setupAuthTest(t)

	authCode := "expired-auth-code"
	handler.authCodes.Store(authCode, authCodeData{
		userID:    uuid.New(),
		expiresAt: time.Now().Add(-1 * time.Second),
	})

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/exchange", handler.ExchangeCode)

	req := httptest.NewRequest(http.MethodPost, "/auth/exchange",
		jsonBody(t, dto.ExchangeCodeRequest{Code: authCode}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "code expired")
}

func TestAuthHandler_ExchangeCode_MissingCode(t *testing.T) {
	_, _, _, handler := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/exchange", handler.ExchangeCode)

	req := httptest.NewRequest(http.MethodPost, "/auth/exchange",
		jsonBody(t, dto.ExchangeCodeRequest{Code: ""}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "code is required")
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mockUserService, mockTokenService, mockJWTService, handler := setupAuthTest(t)

	userID := uuid.New()
	user := &models.User{ID: userID, Email: "test@example.com"}
	oldToken := "old-refresh-token"
	oldHash := services.HashToken(oldToken)

	newPair := &services.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		ExpiresIn:    900,
	}

	mockJWTService.On("ValidateRefreshToken", oldToken).Return(userID, nil)
	mockTokenService.On("ValidateRefreshToken", mock.Anything, oldHash).Return(userID, nil)
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockTokenService.On("RevokeRefreshToken", mock.Anything, oldHash).Return(nil)
	mockJWTService.On("GenerateTokenPair", userID, "test@example.com").Return(newPair, nil)
	mockJWTService.On("RefreshExpiry").Return(7 * 24 * time.Hour)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, services.HashToken("new-refresh"), mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.RefreshToken)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
		jsonBody(t, dto.RefreshTokenRequest{RefreshToken: oldToken}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "new-access", response.AccessToken)
	assert.Equal(t, "new-refresh", response.RefreshToken)

	mockTokenService.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_InvalidToken(t *testing.T) {
	_, _, mockJWTService, handler := setupAuthTest(t)

	mockJWTService.On("ValidateRefreshToken", "garbage").Return(uuid.Nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.RefreshToken)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh",
		jsonBody(t, dto.RefreshTokenRequest{RefreshToken: "garbage"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_GetConsentURL_UnsupportedProvider(t *testing.T) {
	_, _, _, handler := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/auth/:provider/consent", handler.GetConsentURL)

	req := httptest.NewRequest(http.MethodGet, "/auth/gitlab/consent", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported provider")
}

func TestAuthHandler_LogoutAll_Success(t *testing.T) {
	_, mockTokenService, _, handler := setupAuthTest(t)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	mockTokenService.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/auth/logout-all", handler.LogoutAll)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokenService.AssertExpectations(t)
}
