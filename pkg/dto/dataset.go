package dto

import (
	"time"

	"github.com/google/uuid"
)

type DatasetResponse struct {
	ID           uuid.UUID  `json:"id"`
	SellerID     uuid.UUID  `json:"seller_id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Format       string     `json:"format"`
	SampleURL    *string    `json:"sample_url,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type DatasetDetailResponse struct {
	DatasetResponse
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
	Reviews       []ReviewResponse `json:"reviews"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

type DownloadResponse struct {
	URL string `json:"url"`
}
