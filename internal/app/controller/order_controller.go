package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	apperrors "github.com/ndemidova/ringshop-backend/internal/errors"
	"github.com/ndemidova/ringshop-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
	serializer   *serializer.OrderSerializer
}

func NewOrderController(orderService service.OrderService, os *serializer.OrderSerializer) *OrderController {
	return &OrderController{
		orderService: orderService,
		serializer:   os,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder places an order from a JSON submission
// POST /api/orders/
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Malformed order payload", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format",
		})
		return
	}

	order, err := ctrl.orderService.PlaceOrder(input)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation failed",
				"fields":  ve.Fields,
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Product not found",
			})
		default:
			log.Error("Failed to place order", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to create order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"order_id": order.ID,
		"message":  "Order created successfully",
	})
}

// GetOrders lists all orders, newest first (staff only)
// GET /api/admin/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		log.Error("Failed to fetch orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": ctrl.serializer.SerializeList(orders),
		"count":  len(orders),
	})
}

// GetOrder returns a single order with its product (staff only)
// GET /api/admin/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": ctrl.serializer.Serialize(order),
	})
}

// UpdateOrderStatus moves an order through its workflow (staff only)
// PATCH /api/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status is required")
		return
	}

	err := ctrl.orderService.UpdateStatus(id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Status must be one of: new, processing, done")
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			info := apperrors.ParseError(err, "update order status")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	log.Info("Order status changed", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
		"user_id":  middleware.GetUserID(c),
	})

	c.JSON(http.StatusOK, gin.H{
		"order_id": id,
		"status":   req.Status,
	})
}
