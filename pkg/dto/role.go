package dto

import "github.com/inspire-dataserver/data-share-hub/internal/models"

// AssignSellerRequest optionally names the user to upgrade; when empty the
// authenticated user is used.
type AssignSellerRequest struct {
	UserID string `json:"user_id"`
}

type AssignSellerResponse struct {
	Success bool             `json:"success"`
	Data    *models.UserRole `json:"data"`
}

type AlreadySellerResponse struct {
	Message string `json:"message"`
}
