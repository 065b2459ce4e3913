package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/catalog"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "warn", Format: "console"})

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	parsed, rowErrs, err := catalog.ParseFile(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	for _, rowErr := range rowErrs {
		fmt.Printf("  skipped %v\n", rowErr)
	}
	fmt.Printf("Found %d product types, %d delivery types, %d products\n",
		len(parsed.ProductTypes), len(parsed.DeliveryTypes), len(parsed.Products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productTypeRepo := repository.NewProductTypeRepository(db.GetDB())
	importer := catalog.NewImporter(
		service.NewProductTypeService(productTypeRepo),
		service.NewDeliveryTypeService(repository.NewDeliveryTypeRepository(db.GetDB())),
		service.NewProductService(repository.NewProductRepository(db.GetDB()), productTypeRepo),
	)

	result, err := importer.Import(context.Background(), parsed)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Product types:  %d created, %d already present\n", result.ProductTypes.Created, result.ProductTypes.Skipped)
	fmt.Printf("  Delivery types: %d created, %d already present\n", result.DeliveryTypes.Created, result.DeliveryTypes.Skipped)
	fmt.Printf("  Products:       %d created, %d already present\n", result.Products.Created, result.Products.Skipped)
	for _, rowErr := range result.Errors {
		fmt.Printf("  rejected %v\n", rowErr)
	}
}
