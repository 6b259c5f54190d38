package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/internal/storage"
	"github.com/inspire-dataserver/data-share-hub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const downloadURLExpiry = 15 * time.Minute

type PurchaseHandler struct {
	purchaseService     PurchaseServiceInterface
	datasetService      DatasetServiceInterface
	notificationService NotificationServiceInterface
	userService         UserServiceInterface
	emailService        EmailServiceInterface
	hub                 NotificationHubInterface
	store               storage.ObjectStorage
}

func NewPurchaseHandler(
	purchaseService PurchaseServiceInterface,
	datasetService DatasetServiceInterface,
	notificationService NotificationServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
	hub NotificationHubInterface,
	store storage.ObjectStorage,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService:     purchaseService,
		datasetService:      datasetService,
		notificationService: notificationService,
		userService:         userService,
		emailService:        emailService,
		hub:                 hub,
		store:               store,
	}
}

func continuationURL(purchaseID, datasetID uuid.UUID) string {
	return fmt.Sprintf("/payment-success?purchaseId=%s&datasetId=%s", purchaseID, datasetID)
}

// Initiate opens a pending purchase and hands back the checkout continuation
// URL. A repeat initiate for the same dataset is not an error: the existing
// purchase is returned with already_purchased set.
func (h *PurchaseHandler) Initiate(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.InitiatePurchaseRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.DatasetID == uuid.Nil {
		c.BadRequest("dataset_id is required")
		return
	}

	ctx := context.Background()

	dataset, err := h.datasetService.GetByID(ctx, req.DatasetID)
	if err != nil {
		if errors.Is(err, services.ErrDatasetNotFound) {
			c.NotFound("dataset not found")
			return
		}
		c.InternalServerError("failed to load dataset")
		return
	}

	if dataset.SellerID == userID {
		c.BadRequest("cannot purchase your own dataset")
		return
	}

	purchase, err := h.purchaseService.Initiate(ctx, userID, dataset.ID, dataset.Price)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyPurchased) {
			existing, lookupErr := h.purchaseService.GetByBuyerAndDataset(ctx, userID, dataset.ID)
			if lookupErr != nil {
				c.InternalServerError("failed to load existing purchase")
				return
			}
			_ = c.JSON(200, dto.InitiatePurchaseResponse{
				ID:               existing.ID,
				URL:              continuationURL(existing.ID, dataset.ID),
				Status:           existing.Status,
				AlreadyPurchased: true,
			})
			return
		}
		c.InternalServerError("failed to initiate purchase")
		return
	}

	h.notifySale(ctx, dataset, purchase)

	_ = c.JSON(201, dto.InitiatePurchaseResponse{
		ID:     purchase.ID,
		URL:    continuationURL(purchase.ID, dataset.ID),
		Status: purchase.Status,
	})
}

// notifySale tells the seller about a new purchase. Best effort: failures
// are logged and never fail the purchase itself.
func (h *PurchaseHandler) notifySale(ctx context.Context, dataset *models.Dataset, purchase *models.Purchase) {
	sellerMsg := fmt.Sprintf("New purchase of %q for $%.2f", dataset.Title, purchase.Amount)
	sellerNotif, err := h.notificationService.Add(ctx, dataset.SellerID, sellerMsg, models.NotificationSuccess)
	if err != nil {
		log.Printf("purchase %s initiated but seller notification failed: %v", purchase.ID, err)
	} else {
		h.hub.BroadcastNotification(dataset.SellerID, sellerNotif)
	}

	seller, err := h.userService.GetByID(ctx, dataset.SellerID)
	if err != nil {
		log.Printf("purchase %s initiated but seller lookup failed: %v", purchase.ID, err)
		return
	}
	if err := h.emailService.SendSaleNotice(seller.Email, dataset.Title, purchase.Amount); err != nil {
		log.Printf("purchase %s initiated but sale email failed: %v", purchase.ID, err)
	}
}

// Complete finalizes a pending purchase. The state change is the only hard
// requirement; the buyer notification is best effort and a failure there
// never fails the request.
func (h *PurchaseHandler) Complete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid purchase id")
		return
	}

	ctx := context.Background()

	purchase, err := h.purchaseService.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			c.NotFound("purchase not found")
			return
		}
		c.InternalServerError("failed to load purchase")
		return
	}

	if purchase.BuyerID != userID {
		c.Forbidden("purchase belongs to another user")
		return
	}

	if purchase.Status == models.PurchaseStatusCompleted {
		_ = c.JSON(200, dto.PurchaseResponse{
			ID:        purchase.ID,
			BuyerID:   purchase.BuyerID,
			DatasetID: purchase.DatasetID,
			Amount:    purchase.Amount,
			Status:    purchase.Status,
			CreatedAt: purchase.CreatedAt,
		})
		return
	}

	if err := h.purchaseService.Complete(ctx, purchaseID); err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			c.NotFound("purchase not found")
			return
		}
		c.InternalServerError("failed to complete purchase")
		return
	}

	h.notifyPurchaseCompleted(ctx, purchase)

	_ = c.JSON(200, dto.PurchaseResponse{
		ID:        purchase.ID,
		BuyerID:   purchase.BuyerID,
		DatasetID: purchase.DatasetID,
		Amount:    purchase.Amount,
		Status:    models.PurchaseStatusCompleted,
		CreatedAt: purchase.CreatedAt,
	})
}

// notifyPurchaseCompleted confirms download access to the buyer. The status
// transition already happened; a dataset lookup or insert failure is logged
// and does not undo it.
func (h *PurchaseHandler) notifyPurchaseCompleted(ctx context.Context, purchase *models.Purchase) {
	dataset, err := h.datasetService.GetByID(ctx, purchase.DatasetID)
	if err != nil {
		log.Printf("purchase %s completed but dataset lookup failed: %v", purchase.ID, err)
		return
	}

	buyerMsg := fmt.Sprintf("Your purchase of %q is complete. You can now download the dataset.", dataset.Title)
	buyerNotif, err := h.notificationService.Add(ctx, purchase.BuyerID, buyerMsg, models.NotificationInfo)
	if err != nil {
		log.Printf("purchase %s completed but buyer notification failed: %v", purchase.ID, err)
	} else {
		h.hub.BroadcastNotification(purchase.BuyerID, buyerNotif)
	}
}

func (h *PurchaseHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	purchases, err := h.purchaseService.ListByBuyer(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list purchases")
		return
	}

	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		resp = append(resp, dto.PurchaseResponse{
			ID:        p.ID,
			BuyerID:   p.BuyerID,
			DatasetID: p.DatasetID,
			Amount:    p.Amount,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}

	_ = c.JSON(200, resp)
}

func (h *PurchaseHandler) ListSales(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sales, err := h.purchaseService.ListSales(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list sales")
		return
	}

	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, dto.SaleResponse{
			PurchaseResponse: dto.PurchaseResponse{
				ID:        s.ID,
				BuyerID:   s.BuyerID,
				DatasetID: s.DatasetID,
				Amount:    s.Amount,
				Status:    s.Status,
				CreatedAt: s.CreatedAt,
			},
			DatasetTitle: s.DatasetTitle,
		})
	}

	_ = c.JSON(200, resp)
}

// Download mints a short-lived URL for a purchased dataset's file. Sellers
// can always download their own datasets.
func (h *PurchaseHandler) Download(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

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

	if dataset.SellerID != userID {
		hasAccess, err := h.purchaseService.HasAccess(ctx, userID, datasetID)
		if err != nil {
			c.InternalServerError("failed to check access")
			return
		}
		if !hasAccess {
			c.Forbidden("dataset not purchased")
			return
		}
	}

	key, ok := h.store.KeyFor(dataset.FileURL)
	if !ok {
		_ = c.JSON(200, dto.DownloadResponse{URL: dataset.FileURL})
		return
	}

	url, err := h.store.DownloadURL(ctx, key, downloadURLExpiry)
	if err != nil {
		c.InternalServerError("failed to generate download url")
		return
	}

	_ = c.JSON(200, dto.DownloadResponse{URL: url})
}
