package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	"github.com/ndemidova/ringshop-backend/internal/middleware"
)

// WebController serves the customer-facing HTML pages: the catalog, the
// product page with its order form, and the order confirmation.
type WebController struct {
	productService    service.ProductService
	orderService      service.OrderService
	productSerializer *serializer.ProductSerializer
	orderSerializer   *serializer.OrderSerializer
}

func NewWebController(
	productService service.ProductService,
	orderService service.OrderService,
	ps *serializer.ProductSerializer,
	os *serializer.OrderSerializer,
) *WebController {
	return &WebController{
		productService:    productService,
		orderService:      orderService,
		productSerializer: ps,
		orderSerializer:   os,
	}
}

// Index renders the catalog listing
// GET /
func (ctrl *WebController) Index(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts()
	if err != nil {
		log.Error("Failed to render catalog", err, nil)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Something went wrong, please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Products": ctrl.productSerializer.SerializeList(products),
	})
}

// ProductDetail renders a product page with its order form
// GET /product/:id
func (ctrl *WebController) ProductDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseWebID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{
				"Message": "This product does not exist.",
			})
			return
		}
		log.Error("Failed to render product page", err, map[string]interface{}{
			"product_id": id,
		})
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Something went wrong, please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "product_detail.html", gin.H{
		"Product": ctrl.productSerializer.Serialize(product),
		"Errors":  map[string]string{},
		"Values":  service.OrderInput{},
	})
}

// SubmitOrder handles the product page order form. Success redirects to
// the confirmation page; validation failures re-render the form with
// the submitted values and per-field reasons.
// POST /product/:id
func (ctrl *WebController) SubmitOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseWebID(c)
	if !ok {
		return
	}

	var input service.OrderInput
	if err := c.ShouldBind(&input); err != nil {
		log.Warn("Unreadable order form", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"Message": "The form could not be read, please try again.",
		})
		return
	}
	// The product comes from the URL, not from a hidden form field.
	input.ProductID = id

	order, err := ctrl.orderService.PlaceOrder(input)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			product, perr := ctrl.productService.GetProductByID(id)
			if perr != nil {
				c.HTML(http.StatusNotFound, "error.html", gin.H{
					"Message": "This product does not exist.",
				})
				return
			}
			c.HTML(http.StatusOK, "product_detail.html", gin.H{
				"Product": ctrl.productSerializer.Serialize(product),
				"Errors":  ve.Fields,
				"Values":  input,
			})
		case errors.Is(err, service.ErrProductNotFound):
			c.HTML(http.StatusNotFound, "error.html", gin.H{
				"Message": "This product does not exist.",
			})
		default:
			log.Error("Failed to place order from form", err, map[string]interface{}{
				"product_id": id,
			})
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Message": "Something went wrong, please try again.",
			})
		}
		return
	}

	c.Redirect(http.StatusFound, "/order/success/"+strconv.FormatUint(uint64(order.ID), 10))
}

// OrderSuccess renders the order confirmation page
// GET /order/success/:id
func (ctrl *WebController) OrderSuccess(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseWebID(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{
				"Message": "This order does not exist.",
			})
			return
		}
		log.Error("Failed to render order confirmation", err, map[string]interface{}{
			"order_id": id,
		})
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Something went wrong, please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "order_success.html", gin.H{
		"Order": ctrl.orderSerializer.Serialize(order),
	})
}

// OrdersList renders the staff order browsing page. The page has no
// login of its own; it shows order data read-only and all mutations go
// through the authenticated admin API.
// GET /orders/
func (ctrl *WebController) OrdersList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		log.Error("Failed to render orders page", err, nil)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Something went wrong, please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "orders_list.html", gin.H{
		"Orders": ctrl.orderSerializer.SerializeList(orders),
	})
}

func parseWebID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Message": "Page not found.",
		})
		return 0, false
	}
	return uint(id), true
}
