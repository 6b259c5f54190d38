package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
)

var ErrInsufficientInput = errors.New("format and category are required")

// BasePrice is the starting point for every price suggestion, in currency
// units.
const BasePrice = 9.99

type PricingService struct {
	db *database.DB
}

type PriceSuggestion struct {
	SuggestedPrice float64
	FormatFactor   string
	CategoryFactor string
	ContentLength  int
}

func NewPricingService(db *database.DB) *PricingService {
	return &PricingService{db: db}
}

// Suggest derives an advisory price from store aggregates. The estimate
// starts at BasePrice, is averaged with the mean price of same-format
// datasets when any exist, then with the mean price of same-category
// datasets when any exist, and the content-length multiplier is applied
// after both averaging steps. Rounding to 2 decimals happens last. The
// result is never written back.
func (s *PricingService) Suggest(ctx context.Context, title, description, format string, categoryID uuid.UUID) (*PriceSuggestion, error) {
	if format == "" || categoryID == uuid.Nil {
		return nil, ErrInsufficientInput
	}

	price := BasePrice

	var formatMean *float64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT AVG(price) FROM datasets WHERE format = $1
	`, format).Scan(&formatMean)
	if err != nil {
		return nil, err
	}
	if formatMean != nil {
		price = (price + *formatMean) / 2
	}

	var categoryMean *float64
	err = s.db.Pool.QueryRow(ctx, `
		SELECT AVG(price) FROM datasets WHERE category_id = $1
	`, categoryID).Scan(&categoryMean)
	if err != nil {
		return nil, err
	}
	if categoryMean != nil {
		price = (price + *categoryMean) / 2
	}

	contentLength := len(title) + len(description)
	switch {
	case contentLength > 500:
		price *= 1.2
	case contentLength > 200:
		price *= 1.1
	}

	return &PriceSuggestion{
		SuggestedPrice: math.Round(price*100) / 100,
		FormatFactor:   format,
		CategoryFactor: categoryID.String(),
		ContentLength:  contentLength,
	}, nil
}
