package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrInvalidFormat   = errors.New("format must be one of csv, json, pdf, excel")
)

type DatasetService struct {
	db *database.DB
}

func NewDatasetService(db *database.DB) *DatasetService {
	return &DatasetService{db: db}
}

type CreateDatasetInput struct {
	Title        string
	Description  string
	Price        float64
	Format       string
	CategoryID   *uuid.UUID
	FileURL      string
	SampleURL    *string
	ThumbnailURL *string
}

func (s *DatasetService) Create(ctx context.Context, sellerID uuid.UUID, input CreateDatasetInput) (*models.Dataset, error) {
	if !models.ValidFormat(input.Format) {
		return nil, ErrInvalidFormat
	}

	var dataset models.Dataset
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO datasets (seller_id, category_id, title, description, price, format, file_url, sample_url, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, seller_id, category_id, title, description, price, format, file_url, sample_url, thumbnail_url, created_at, updated_at
	`, sellerID, input.CategoryID, input.Title, input.Description, input.Price,
		input.Format, input.FileURL, input.SampleURL, input.ThumbnailURL).Scan(
		&dataset.ID, &dataset.SellerID, &dataset.CategoryID,
		&dataset.Title, &dataset.Description, &dataset.Price, &dataset.Format,
		&dataset.FileURL, &dataset.SampleURL, &dataset.ThumbnailURL,
		&dataset.CreatedAt, &dataset.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset: %w", err)
	}
	return &dataset, nil
}

func (s *DatasetService) GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	var dataset models.Dataset
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, seller_id, category_id, title, description, price, format, file_url, sample_url, thumbnail_url, created_at, updated_at
		FROM datasets WHERE id = $1
	`, id).Scan(
		&dataset.ID, &dataset.SellerID, &dataset.CategoryID,
		&dataset.Title, &dataset.Description, &dataset.Price, &dataset.Format,
		&dataset.FileURL, &dataset.SampleURL, &dataset.ThumbnailURL,
		&dataset.CreatedAt, &dataset.UpdatedAt,
	)
	if err != nil {
		return nil, ErrDatasetNotFound
	}
	return &dataset, nil
}

type DatasetFilter struct {
	CategoryID *uuid.UUID
	Format     string
	Search     string
}

func (s *DatasetService) List(ctx context.Context, filter DatasetFilter) ([]models.Dataset, error) {
	query := `
		SELECT id, seller_id, category_id, title, description, price, format, file_url, sample_url, thumbnail_url, created_at, updated_at
		FROM datasets`
	var conditions []string
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Format != "" {
		args = append(args, filter.Format)
		conditions = append(conditions, fmt.Sprintf("format = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDatasets(rows)
}

func (s *DatasetService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Dataset, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, seller_id, category_id, title, description, price, format, file_url, sample_url, thumbnail_url, created_at, updated_at
		FROM datasets
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDatasets(rows)
}

func (s *DatasetService) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type datasetRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanDatasets(rows datasetRows) ([]models.Dataset, error) {
	var datasets []models.Dataset
	for rows.Next() {
		var d models.Dataset
		if err := rows.Scan(
			&d.ID, &d.SellerID, &d.CategoryID,
			&d.Title, &d.Description, &d.Price, &d.Format,
			&d.FileURL, &d.SampleURL, &d.ThumbnailURL,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}
