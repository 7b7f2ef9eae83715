package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	"github.com/ndemidova/ringshop-backend/internal/db"
	"github.com/ndemidova/ringshop-backend/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)
	productSerializer := serializer.NewProductSerializer("https://cdn.ringshop.example")
	s3 := storage.NewS3Storage("eu-central-1", "test-bucket", "", "", "https://cdn.ringshop.example")
	productController := NewProductController(productService, productSerializer, s3)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/products/", productController.GetProducts)
	router.GET("/api/products/:id", productController.GetProduct)
	router.POST("/api/admin/products", productController.CreateProduct)
	router.PUT("/api/admin/products/:id", productController.UpdateProduct)
	router.DELETE("/api/admin/products/:id", productController.DeleteProduct)

	return router, productRepo, testDB
}

func TestProductController_GetProducts(t *testing.T) {
	router, productRepo, _ := setupProductControllerTest(t)

	require.NoError(t, productRepo.Create(&model.Product{
		Name:        "Hammered Band",
		Description: "Hand hammered surface",
		Category:    model.CategoryWeddingRing,
		Material:    model.MaterialSilver,
		Price:       decimal.NewFromFloat(129.90),
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Products []serializer.ProductResponse `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Products, 1)
	assert.Equal(t, "Hammered Band", response.Products[0].Name)
	assert.Equal(t, "129.90", response.Products[0].Price)
	assert.Nil(t, response.Products[0].Image)
}

func TestProductController_GetProducts_EmptyCatalog(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":[]`)
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestProductController_GetProduct_InvalidID(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_CreateProduct(t *testing.T) {
	router, _, testDB := setupProductControllerTest(t)

	w := postJSON(router, "/api/admin/products", `{
		"name": "Vintage Halo",
		"description": "Engagement ring in vintage style",
		"category": "engagement_ring",
		"material": "rose_gold",
		"price": "799.99"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var stored model.Product
	require.NoError(t, testDB.First(&stored).Error)
	assert.Equal(t, "Vintage Halo", stored.Name)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("799.99")))
}

func TestProductController_CreateProduct_InvalidPrice(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	w := postJSON(router, "/api/admin/products", `{
		"name": "Broken",
		"description": "x",
		"category": "wedding_ring",
		"material": "gold",
		"price": "lots"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_INVALID_PRICE")
}

func TestProductController_CreateProduct_InvalidCategory(t *testing.T) {
	router, _, _ := setupProductControllerTest(t)

	w := postJSON(router, "/api/admin/products", `{
		"name": "Pendant",
		"description": "not a ring at all",
		"category": "necklace",
		"material": "gold",
		"price": "100.00"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_INVALID_ATTRIBUTE")
}

func TestProductController_DeleteProduct(t *testing.T) {
	router, productRepo, testDB := setupProductControllerTest(t)

	product := &model.Product{
		Name:        "To Be Removed",
		Description: "x",
		Category:    model.CategoryWeddingRing,
		Material:    model.MaterialGold,
		Price:       decimal.NewFromInt(100),
	}
	require.NoError(t, productRepo.Create(product))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
