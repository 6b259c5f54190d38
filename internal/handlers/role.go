package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type RoleHandler struct {
	roleService RoleServiceInterface
}

func NewRoleHandler(roleService RoleServiceInterface) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// BecomeSeller upgrades the authenticated user to seller. The grant is
// idempotent: a repeat call reports the already-seller state with 200
// rather than an error. The request body may name a user_id, but it must
// be the caller's own.
func (h *RoleHandler) BecomeSeller(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.AssignSellerRequest
	if err := c.BindJSON(&req); err == nil && req.UserID != "" {
		requested, err := uuid.Parse(req.UserID)
		if err != nil {
			c.BadRequest("invalid user_id")
			return
		}
		if requested != userID {
			c.Forbidden("cannot assign roles to another user")
			return
		}
	}

	grant, alreadySeller, err := h.roleService.BecomeSeller(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to assign seller role")
		return
	}

	if alreadySeller {
		_ = c.JSON(200, dto.AlreadySellerResponse{Message: "User is already a seller"})
		return
	}

	_ = c.JSON(200, dto.AssignSellerResponse{
		Success: true,
		Data:    grant,
	})
}

func (h *RoleHandler) ListMyRoles(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	roles, err := h.roleService.ListRoles(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list roles")
		return
	}

	_ = c.JSON(200, map[string][]string{"roles": roles})
}
