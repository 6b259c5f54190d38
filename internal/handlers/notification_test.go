package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/inspire-dataserver/data-share-hub/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationHandler_List(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	notifications := []models.Notification{
		{
			ID:        uuid.New(),
			UserID:    userID,
			Message:   `New purchase of "Housing Prices 2024" for $49.00`,
			Type:      models.NotificationSuccess,
			Read:      false,
			CreatedAt: time.Now(),
		},
		{
			ID:        uuid.New(),
			UserID:    userID,
			Message:   "older message",
			Type:      models.NotificationInfo,
			Read:      true,
			CreatedAt: time.Now().Add(-time.Hour),
		},
	}

	mockService.On("ListForUser", mock.Anything, userID).Return(notifications, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/notifications", handler.List)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.False(t, response[0].Read)
	assert.True(t, response[1].Read)

	mockService.AssertExpectations(t)
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	mockService.On("UnreadCount", mock.Anything, userID).Return(4, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/notifications/unread-count", handler.UnreadCount)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UnreadCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 4, response.Count)

	mockService.AssertExpectations(t)
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	notifID := uuid.New()

	mockService.On("MarkAsRead", mock.Anything, notifID, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/notifications/:id/read", handler.MarkAsRead)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/notifications/"+notifID.String()+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestNotificationHandler_MarkAsRead_NotOwned(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	notifID := uuid.New()

	mockService.On("MarkAsRead", mock.Anything, notifID, userID).
		Return(services.ErrNotificationNotFound)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/notifications/:id/read", handler.MarkAsRead)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/notifications/"+notifID.String()+"/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

func TestNotificationHandler_MarkAllAsRead(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	userID := uuid.New()
	mockService.On("MarkAllAsRead", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/notifications/read-all", handler.MarkAllAsRead)

	token := generateTestToken(t, jwtSvc, userID, "user@example.com")
	req := httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestNotificationHandler_List_NotAuthenticated(t *testing.T) {
	mockService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/notifications", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "ListForUser")
}
