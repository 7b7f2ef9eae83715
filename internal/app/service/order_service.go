package service

import (
	"errors"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	PlaceOrder(input OrderInput) (*model.Order, error)
	ListOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PlaceOrder validates a submission and persists exactly one order.
// Validation failures return *ValidationError with per-field reasons; a
// missing product returns ErrProductNotFound (a distinct condition, not
// a field error). Nothing is persisted on any failure.
func (s *orderService) PlaceOrder(input OrderInput) (*model.Order, error) {
	if fields := ValidateOrderInput(input); len(fields) > 0 {
		logger.Warn("Order submission rejected", map[string]interface{}{
			"fields": fields,
		})
		return nil, &ValidationError{Fields: fields}
	}

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order references missing product", map[string]interface{}{
				"product_id": input.ProductID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to resolve order product", err, map[string]interface{}{
			"product_id": input.ProductID,
		})
		return nil, err
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	order := &model.Order{
		ProductID:     product.ID,
		CustomerName:  input.CustomerName,
		Email:         input.Email,
		Phone:         input.Phone,
		RingSize:      input.RingSize,
		EngravingText: input.EngravingText,
		Quantity:      quantity,
		Status:        model.OrderStatusNew,
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}
	order.Product = *product

	logger.Info("Order placed", map[string]interface{}{
		"order_id":   order.ID,
		"product_id": product.ID,
		"quantity":   order.Quantity,
	})
	return order, nil
}

// ListOrders returns all orders newest first, each with its product.
func (s *orderService) ListOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, err
	}

	logger.Info("Orders listed", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return order, nil
}

// UpdateStatus sets the order status. Status edits are last-write-wins;
// concurrent staff edits are rare enough that optimistic locking would
// buy nothing here.
func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}
