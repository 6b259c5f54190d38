package models

import (
	"time"

	"github.com/google/uuid"
)

// Supported dataset file formats.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

func ValidFormat(format string) bool {
	switch format {
	case FormatCSV, FormatJSON, FormatPDF, FormatExcel:
		return true
	}
	return false
}

type Dataset struct {
	ID           uuid.UUID  `json:"id"`
	SellerID     uuid.UUID  `json:"seller_id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Format       string     `json:"format"`
	FileURL      string     `json:"file_url"`
	SampleURL    *string    `json:"sample_url,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
