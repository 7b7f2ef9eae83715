package serializer

import (
	"time"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
)

// OrderResponse is the staff-facing order representation with the
// ordered product embedded.
type OrderResponse struct {
	ID            uint            `json:"id"`
	Product       ProductResponse `json:"product"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	RingSize      string          `json:"ring_size"`
	EngravingText string          `json:"engraving_text"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

type OrderSerializer struct {
	products *ProductSerializer
}

func NewOrderSerializer(products *ProductSerializer) *OrderSerializer {
	return &OrderSerializer{products: products}
}

func (s *OrderSerializer) Serialize(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		Product:       s.products.Serialize(&order.Product),
		CustomerName:  order.CustomerName,
		Email:         order.Email,
		Phone:         order.Phone,
		RingSize:      order.RingSize,
		EngravingText: order.EngravingText,
		Quantity:      order.Quantity,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *OrderSerializer) SerializeList(orders []model.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, s.Serialize(&orders[i]))
	}
	return responses
}
