package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	apperrors "github.com/ndemidova/ringshop-backend/internal/errors"
	"github.com/ndemidova/ringshop-backend/internal/middleware"
	"github.com/ndemidova/ringshop-backend/internal/storage"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService service.ProductService
	serializer     *serializer.ProductSerializer
	storage        *storage.S3Storage
}

func NewProductController(productService service.ProductService, ps *serializer.ProductSerializer, st *storage.S3Storage) *ProductController {
	return &ProductController{
		productService: productService,
		serializer:     ps,
		storage:        st,
	}
}

type ProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Material    string `json:"material" binding:"required"`
	Price       string `json:"price" binding:"required"`
}

// GetProducts returns the full catalog, newest first
// GET /api/products/
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts()
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": ctrl.serializer.SerializeList(products),
	})
}

// GetProduct returns a single product
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": ctrl.serializer.Serialize(product),
	})
}

// CreateProduct adds a catalog item (staff only)
// POST /api/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Price must be a decimal number")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    model.ProductCategory(req.Category),
		Material:    model.ProductMaterial(req.Material),
		Price:       price,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		respondProductServiceError(c, err, log)
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    middleware.GetUserID(c),
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": ctrl.serializer.Serialize(product),
	})
}

// UpdateProduct replaces the editable fields of a catalog item (staff only)
// PUT /api/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Price must be a decimal number")
		return
	}

	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    model.ProductCategory(req.Category),
		Material:    model.ProductMaterial(req.Material),
		Price:       price,
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		respondProductServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": ctrl.serializer.Serialize(product),
	})
}

// DeleteProduct removes a catalog item and its orders (staff only)
// DELETE /api/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondProductServiceError(c, err, log)
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"user_id":    middleware.GetUserID(c),
	})

	c.Status(http.StatusNoContent)
}

// UploadImage attaches a product image via multipart upload (staff only)
// POST /api/admin/products/:id/image
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	key, err := ctrl.storage.UploadProductImage(c.Request.Context(), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		log.Warn("Product image rejected", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
		return
	}

	if err := ctrl.productService.AttachImage(id, key); err != nil {
		respondProductServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image": ctrl.storage.URL(key),
	})
}

func bindProductRequest(c *gin.Context) (*ProductRequest, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string]string, len(ve))
			for _, fe := range ve {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
			apperrors.RespondWithValidationError(c, fields)
			return nil, false
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return nil, false
	}
	return &req, true
}

func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func respondProductServiceError(c *gin.Context, err error, log *logger.Logger) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrInvalidCategory), errors.Is(err, service.ErrInvalidMaterial):
		apperrors.BadRequest(c, apperrors.ProductInvalidEnum, err.Error())
	case errors.Is(err, service.ErrNegativePrice):
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, err.Error())
	default:
		log.Error("Product operation failed", err, nil)
		info := apperrors.ParseError(err, "product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
