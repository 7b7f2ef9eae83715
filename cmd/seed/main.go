package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ndemidova/ringshop-backend/config"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Imports a catalog spreadsheet. Expected columns, with a header row:
// name | description | category | material | price
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found")
	}

	var products []model.Product
	for i, row := range rows[1:] {
		rowNum := i + 2

		product, err := parseProductRow(row)
		if err != nil {
			fmt.Printf("Skipping row %d: %v\n", rowNum, err)
			continue
		}
		products = append(products, *product)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid product rows found")
	}
	return products, nil
}

func parseProductRow(row []string) (*model.Product, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("expected 5 columns, got %d", len(row))
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}

	category := model.ProductCategory(strings.TrimSpace(row[2]))
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category %q", row[2])
	}

	material := model.ProductMaterial(strings.TrimSpace(row[3]))
	if !material.Valid() {
		return nil, fmt.Errorf("invalid material %q", row[3])
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", row[4])
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("negative price %q", row[4])
	}

	return &model.Product{
		Name:        name,
		Description: strings.TrimSpace(row[1]),
		Category:    category,
		Material:    material,
		Price:       price,
	}, nil
}
