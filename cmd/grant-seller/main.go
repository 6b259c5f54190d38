package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: grant-seller <email>")
		os.Exit(1)
	}

	email := os.Args[1]

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

	userService := services.NewUserService(db)
	roleService := services.NewRoleService(db)

	user, err := userService.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("No user found with email: %s", email)
	}

	_, alreadySeller, err := roleService.BecomeSeller(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to grant seller role: %v", err)
	}

	if alreadySeller {
		fmt.Printf("%s is already a seller\n", email)
		return
	}

	fmt.Printf("Successfully granted seller role to %s\n", email)
}
