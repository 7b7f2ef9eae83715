package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	"github.com/ndemidova/ringshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWebControllerTest(t *testing.T) (*gin.Engine, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := &model.Product{
		Name:        "Moonstone Ring",
		Description: "Engagement ring with a moonstone",
		Category:    model.CategoryEngagementRing,
		Material:    model.MaterialSilver,
		Price:       decimal.NewFromFloat(289.00),
	}
	require.NoError(t, testDB.Create(product).Error)

	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	productSerializer := serializer.NewProductSerializer("")
	orderSerializer := serializer.NewOrderSerializer(productSerializer)

	webController := NewWebController(productService, orderService, productSerializer, orderSerializer)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("../../../templates/*.html")
	router.GET("/", webController.Index)
	router.GET("/product/:id", webController.ProductDetail)
	router.POST("/product/:id", webController.SubmitOrder)
	router.GET("/order/success/:id", webController.OrderSuccess)
	router.GET("/orders/", webController.OrdersList)

	return router, product, testDB
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebController_Index(t *testing.T) {
	router, _, _ := setupWebControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Moonstone Ring")
	assert.Contains(t, w.Body.String(), "289.00")
}

func TestWebController_ProductDetail(t *testing.T) {
	router, product, _ := setupWebControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/product/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Moonstone Ring")
	assert.Contains(t, w.Body.String(), "Place an order")
}

func TestWebController_ProductDetail_NotFound(t *testing.T) {
	router, _, _ := setupWebControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/product/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebController_SubmitOrder_RedirectsToConfirmation(t *testing.T) {
	router, product, testDB := setupWebControllerTest(t)

	w := postForm(router, fmt.Sprintf("/product/%d", product.ID), url.Values{
		"customer_name": {"Jana"},
		"email":         {"jana@example.com"},
		"phone":         {"+49123456789"},
		"ring_size":     {"16"},
		"quantity":      {"2"},
	})

	assert.Equal(t, http.StatusFound, w.Code)

	var order model.Order
	require.NoError(t, testDB.First(&order).Error)
	assert.Equal(t, fmt.Sprintf("/order/success/%d", order.ID), w.Header().Get("Location"))
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, model.OrderStatusNew, order.Status)
}

func TestWebController_SubmitOrder_RerendersWithFieldErrors(t *testing.T) {
	router, product, testDB := setupWebControllerTest(t)

	w := postForm(router, fmt.Sprintf("/product/%d", product.ID), url.Values{
		"customer_name": {""},
		"email":         {"broken"},
		"phone":         {"+49123456789"},
		"ring_size":     {"16"},
	})

	// The form page renders again with reasons next to the fields.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "required")
	assert.Contains(t, w.Body.String(), "invalid format")
	assert.Contains(t, w.Body.String(), "Moonstone Ring")

	var count int64
	require.NoError(t, testDB.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebController_SubmitOrder_KeepsSubmittedValues(t *testing.T) {
	router, product, _ := setupWebControllerTest(t)

	w := postForm(router, fmt.Sprintf("/product/%d", product.ID), url.Values{
		"customer_name": {"Jana"},
		"email":         {"broken"},
		"phone":         {"+49123456789"},
		"ring_size":     {"16"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Jana"`)
	assert.Contains(t, w.Body.String(), `value="broken"`)
}

func TestWebController_OrderSuccess(t *testing.T) {
	router, product, testDB := setupWebControllerTest(t)

	order := &model.Order{
		ProductID:    product.ID,
		CustomerName: "Karin",
		Email:        "karin@example.com",
		Phone:        "+49123",
		RingSize:     "15",
		Quantity:     1,
		Status:       model.OrderStatusNew,
	}
	require.NoError(t, testDB.Create(order).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/order/success/%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("#%d", order.ID))
	assert.Contains(t, w.Body.String(), "Moonstone Ring")
}

func TestWebController_OrdersList(t *testing.T) {
	router, product, testDB := setupWebControllerTest(t)

	require.NoError(t, testDB.Create(&model.Order{
		ProductID:    product.ID,
		CustomerName: "Lena",
		Email:        "lena@example.com",
		Phone:        "+49123",
		RingSize:     "14",
		Quantity:     1,
		Status:       model.OrderStatusProcessing,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lena")
	assert.Contains(t, w.Body.String(), "processing")
	assert.Contains(t, w.Body.String(), "Moonstone Ring")
}
