package service

import (
	"errors"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidMaterial = errors.New("invalid product material")
	ErrNegativePrice   = errors.New("product price must not be negative")
)

// ProductCache caches the full catalog listing. Implementations must be
// safe to skip entirely; the service works identically without one.
type ProductCache interface {
	GetProducts() ([]model.Product, bool)
	SetProducts(products []model.Product)
	Invalidate()
}

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	AttachImage(id uint, imageKey string) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       ProductCache
}

// NewProductService builds the catalog service. The cache argument is
// optional.
func NewProductService(productRepo repository.ProductRepository, cache ...ProductCache) ProductService {
	var c ProductCache
	if len(cache) > 0 {
		c = cache[0]
	}
	return &productService{
		productRepo: productRepo,
		cache:       c,
	}
}

// ListProducts returns the catalog, newest first.
func (s *productService) ListProducts() ([]model.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(); ok {
			logger.Debug("Catalog served from cache", map[string]interface{}{
				"count": len(products),
			})
			return products, nil
		}
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProducts(products)
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		logger.Warn("Product rejected before persistence", map[string]interface{}{
			"name":  product.Name,
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Creating new product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"material": product.Material,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	s.invalidateCache()

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		return err
	}

	// The image is managed through AttachImage, not plain updates.
	product.ImageKey = existing.ImageKey
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	s.invalidateCache()

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

// DeleteProduct removes a product and, by cascade, every order that
// references it.
func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: product not found", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	s.invalidateCache()

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) AttachImage(id uint, imageKey string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	product.ImageKey = imageKey
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to attach product image", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	s.invalidateCache()

	logger.Info("Product image attached", map[string]interface{}{
		"product_id": id,
		"image_key":  imageKey,
	})
	return nil
}

func (s *productService) invalidateCache() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

// validateProduct enforces the model constraints before anything
// reaches the database.
func validateProduct(product *model.Product) error {
	if !product.Category.Valid() {
		return ErrInvalidCategory
	}
	if !product.Material.Valid() {
		return ErrInvalidMaterial
	}
	if product.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
