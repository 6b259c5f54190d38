package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/handlers"
	authmw "github.com/inspire-dataserver/data-share-hub/internal/middleware"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/internal/sse"
	"github.com/inspire-dataserver/data-share-hub/internal/storage"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to prepare storage bucket: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	roleService := services.NewRoleService(db)
	datasetService := services.NewDatasetService(db)
	purchaseService := services.NewPurchaseService(db)
	notificationService := services.NewNotificationService(db)
	pricingService := services.NewPricingService(db)
	reviewService := services.NewReviewService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	profileHandler := handlers.NewProfileHandler(userService, roleService)
	roleHandler := handlers.NewRoleHandler(roleService)
	datasetHandler := handlers.NewDatasetHandler(datasetService, reviewService, roleService, store)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, datasetService, notificationService, userService, emailService, hub, store)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	sseHandler := handlers.NewSSEHandler(hub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	registerRoutes(app, jwtService, routeHandlers{
		auth:         authHandler,
		profile:      profileHandler,
		role:         roleHandler,
		dataset:      datasetHandler,
		purchase:     purchaseHandler,
		notification: notificationHandler,
		pricing:      pricingHandler,
		sse:          sseHandler,
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

type routeHandlers struct {
	auth         *handlers.AuthHandler
	profile      *handlers.ProfileHandler
	role         *handlers.RoleHandler
	dataset      *handlers.DatasetHandler
	purchase     *handlers.PurchaseHandler
	notification *handlers.NotificationHandler
	pricing      *handlers.PricingHandler
	sse          *handlers.SSEHandler
}

// registerRoutes builds the full route table. The router rejects a static
// path segment alongside a param segment within one method tree, so per
// method a segment is either always static or always a param here.
func registerRoutes(app *drift.Engine, jwtService *services.JWTService, h routeHandlers) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", h.auth.GetConsentURL)
	auth.Get("/:provider/callback", h.auth.Callback)
	auth.Post("/exchange", h.auth.ExchangeCode)
	auth.Post("/refresh", h.auth.RefreshToken)
	auth.Post("/logout", h.auth.Logout)

	api.Get("/datasets", h.dataset.List)
	api.Get("/datasets/:id", h.dataset.Get)
	api.Get("/categories", h.dataset.ListCategories)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", h.auth.LogoutAll)

	protected.Get("/users/me", h.profile.GetMe)
	protected.Patch("/users/me", h.profile.UpdateMe)
	protected.Get("/users/me/roles", h.role.ListMyRoles)
	protected.Get("/users/me/datasets", h.dataset.ListMine)
	protected.Post("/users/me/become-seller", h.role.BecomeSeller)

	protected.Post("/datasets", h.dataset.Create)
	protected.Get("/datasets/:id/download", h.purchase.Download)
	protected.Post("/datasets/suggest-price", h.pricing.SuggestPrice)

	protected.Post("/purchases", h.purchase.Initiate)
	protected.Post("/purchases/:id/complete", h.purchase.Complete)
	protected.Get("/purchases", h.purchase.ListMine)
	protected.Get("/sales", h.purchase.ListSales)

	protected.Get("/notifications", h.notification.List)
	protected.Get("/notifications/unread-count", h.notification.UnreadCount)
	protected.Patch("/notifications/:id/read", h.notification.MarkAsRead)
	protected.Post("/notifications/read-all", h.notification.MarkAllAsRead)

	protected.Get("/events", h.sse.Connect)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})
}
