package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/internal/storage"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const maxUploadSize = 256 << 20 // 256 MiB

type DatasetHandler struct {
	datasetService DatasetServiceInterface
	reviewService  ReviewServiceInterface
	roleService    RoleServiceInterface
	store          storage.ObjectStorage
}

func NewDatasetHandler(
	datasetService DatasetServiceInterface,
	reviewService ReviewServiceInterface,
	roleService RoleServiceInterface,
	store storage.ObjectStorage,
) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		reviewService:  reviewService,
		roleService:    roleService,
		store:          store,
	}
}

func datasetResponse(d *models.Dataset) dto.DatasetResponse {
	return dto.DatasetResponse{
		ID:           d.ID,
		SellerID:     d.SellerID,
		CategoryID:   d.CategoryID,
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Format:       d.Format,
		SampleURL:    d.SampleURL,
		ThumbnailURL: d.ThumbnailURL,
		CreatedAt:    d.CreatedAt,
	}
}

func (h *DatasetHandler) List(c *drift.Context) {
	filter := services.DatasetFilter{
		Format: c.QueryParam("format"),
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	datasets, err := h.datasetService.List(context.Background(), filter)
	if err != nil {
		c.InternalServerError("failed to list datasets")
		return
	}

	resp := make([]dto.DatasetResponse, 0, len(datasets))
	for i := range datasets {
		resp = append(resp, datasetResponse(&datasets[i]))
	}

	_ = c.JSON(200, resp)
}

func (h *DatasetHandler) Get(c *drift.Context) {
	datasetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid dataset id")
		return
	}

	ctx := context.Background()

	dataset, err := h.datasetService.GetByID(ctx, datasetID)
	if err != nil {
		if errors.Is(err, services.ErrDatasetNotFound) {
			c.NotFound("dataset not found")
			return
		}
		c.InternalServerError("failed to load dataset")
		return
	}

	avg, count, err := h.reviewService.AverageRating(ctx, datasetID)
	if err != nil {
		c.InternalServerError("failed to load rating")
		return
	}

	reviews, err := h.reviewService.ListForDataset(ctx, datasetID)
	if err != nil {
		c.InternalServerError("failed to load reviews")
		return
	}

	reviewResp := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		reviewResp = append(reviewResp, dto.ReviewResponse{
			ID:        r.ID,
			DatasetID: r.DatasetID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	_ = c.JSON(200, dto.DatasetDetailResponse{
		DatasetResponse: datasetResponse(dataset),
		AverageRating:   avg,
		ReviewCount:     count,
		Reviews:         reviewResp,
	})
}

// Create publishes a new dataset. The listing and its file arrive together
// as multipart form data; only sellers can publish.
func (h *DatasetHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	isSeller, err := h.roleService.HasRole(ctx, userID, models.RoleSeller)
	if err != nil {
		c.InternalServerError("failed to check role")
		return
	}
	if !isSeller {
		c.Forbidden("seller role required")
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	title := c.Request.FormValue("title")
	description := c.Request.FormValue("description")
	format := c.Request.FormValue("format")
	if title == "" || format == "" {
		c.BadRequest("title and format are required")
		return
	}
	if !models.ValidFormat(format) {
		c.BadRequest("format must be one of csv, json, pdf, excel")
		return
	}

	price, err := strconv.ParseFloat(c.Request.FormValue("price"), 64)
	if err != nil || price < 0 {
		c.BadRequest("price must be a non-negative number")
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Request.FormValue("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid category id")
			return
		}
		categoryID = &parsed
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("dataset file is required")
		return
	}
	defer file.Close()

	key, err := storage.ObjectKey(userID.String(), formatExtension(format))
	if err != nil {
		c.InternalServerError("failed to build storage key")
		return
	}

	fileURL, err := h.store.Upload(ctx, key, file, header.Size, formatContentType(format))
	if err != nil {
		c.InternalServerError("failed to upload dataset file")
		return
	}

	input := services.CreateDatasetInput{
		Title:       title,
		Description: description,
		Price:       price,
		Format:      format,
		CategoryID:  categoryID,
		FileURL:     fileURL,
	}

	if sample, sampleHeader, err := c.Request.FormFile("sample"); err == nil {
		defer sample.Close()
		sampleKey, keyErr := storage.ObjectKey(userID.String(), formatExtension(format))
		if keyErr != nil {
			c.InternalServerError("failed to build storage key")
			return
		}
		sampleURL, upErr := h.store.Upload(ctx, sampleKey, sample, sampleHeader.Size, formatContentType(format))
		if upErr != nil {
			c.InternalServerError("failed to upload sample file")
			return
		}
		input.SampleURL = &sampleURL
	}

	dataset, err := h.datasetService.Create(ctx, userID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFormat) {
			c.BadRequest("format must be one of csv, json, pdf, excel")
			return
		}
		c.InternalServerError("failed to create dataset")
		return
	}

	_ = c.JSON(201, datasetResponse(dataset))
}

func (h *DatasetHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	datasets, err := h.datasetService.ListBySeller(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list datasets")
		return
	}

	resp := make([]dto.DatasetResponse, 0, len(datasets))
	for i := range datasets {
		resp = append(resp, datasetResponse(&datasets[i]))
	}

	_ = c.JSON(200, resp)
}

func (h *DatasetHandler) ListCategories(c *drift.Context) {
	categories, err := h.datasetService.ListCategories(context.Background())
	if err != nil {
		c.InternalServerError("failed to list categories")
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, dto.CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}

	_ = c.JSON(200, resp)
}

func formatExtension(format string) string {
	if format == models.FormatExcel {
		return "xlsx"
	}
	return format
}

func formatContentType(format string) string {
	switch format {
	case models.FormatCSV:
		return "text/csv"
	case models.FormatJSON:
		return "application/json"
	case models.FormatPDF:
		return "application/pdf"
	case models.FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}
