package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type PricingHandler struct {
	pricingService PricingServiceInterface
}

func NewPricingHandler(pricingService PricingServiceInterface) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// SuggestPrice returns an advisory listing price for a draft dataset. The
// suggestion is never persisted.
func (h *PricingHandler) SuggestPrice(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SuggestPriceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Format == "" || req.Category == "" {
		c.BadRequest("format and category are required")
		return
	}

	categoryID, err := uuid.Parse(req.Category)
	if err != nil {
		c.BadRequest("invalid category id")
		return
	}

	suggestion, err := h.pricingService.Suggest(
		context.Background(), req.Title, req.Description, req.Format, categoryID)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientInput) {
			c.BadRequest("format and category are required")
			return
		}
		_ = c.JSON(500, map[string]string{
			"error":   "failed to compute price suggestion",
			"details": err.Error(),
		})
		return
	}

	_ = c.JSON(200, dto.SuggestPriceResponse{
		SuggestedPrice: suggestion.SuggestedPrice,
		Factors: dto.PriceFactors{
			FormatFactor:   suggestion.FormatFactor,
			CategoryFactor: suggestion.CategoryFactor,
			ContentLength:  suggestion.ContentLength,
		},
	})
}
