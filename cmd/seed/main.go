package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/opentocoder/storefront/config"
	"github.com/opentocoder/storefront/internal/auth"
	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/store"
)

// Seeds the catalog and a demo account for local development.
func main() {
	cfg := config.Load()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	demo := &models.User{
		ID:           uuid.New(),
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: hash,
		Role:         "user",
	}
	if err := db.CreateUser(ctx, demo); err != nil {
		log.Printf("Demo user not created (may already exist): %v", err)
	} else {
		log.Printf("Created demo user %s", demo.Email)
	}

	// Prices in minor units
	products := []models.Product{
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, hot-swappable switches", Price: 8999, Stock: 25, Category: "electronics"},
		{Name: "USB-C Hub", Description: "7-in-1 with HDMI and card reader", Price: 3499, Stock: 60, Category: "electronics"},
		{Name: "Espresso Grinder", Description: "Conical burr, 40 settings", Price: 15900, Stock: 10, Category: "kitchen"},
		{Name: "Pour-Over Kettle", Description: "Gooseneck, 1L", Price: 4250, Stock: 18, Category: "kitchen"},
		{Name: "Trail Backpack", Description: "28L, rain cover included", Price: 7800, Stock: 32, Category: "outdoors"},
		{Name: "Camp Stove", Description: "Single burner, piezo ignition", Price: 5600, Stock: 14, Category: "outdoors"},
	}

	for i := range products {
		products[i].ID = uuid.New()
		products[i].IsActive = true
		if err := db.CreateProduct(ctx, &products[i]); err != nil {
			log.Printf("Failed to create product %q: %v", products[i].Name, err)
			continue
		}
		log.Printf("Created product %q (stock %d)", products[i].Name, products[i].Stock)
	}

	log.Println("Seed complete")
}
