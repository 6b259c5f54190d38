package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProfileHandler struct {
	userService UserServiceInterface
	roleService RoleServiceInterface
}

func NewProfileHandler(userService UserServiceInterface, roleService RoleServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		roleService: roleService,
	}
}

func (h *ProfileHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to load profile")
		return
	}

	roles, err := h.roleService.ListRoles(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to load roles")
		return
	}

	_ = c.JSON(200, dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		Roles:     roles,
	})
}

func (h *ProfileHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	profile, err := h.userService.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Bio, req.AvatarURL)
	if err != nil {
		c.InternalServerError("failed to update profile")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to load user")
		return
	}

	roles, err := h.roleService.ListRoles(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to load roles")
		return
	}

	_ = c.JSON(200, dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		Roles:     roles,
	})
}
