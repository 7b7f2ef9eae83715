package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"        // just submitted
	OrderStatusProcessing OrderStatus = "processing" // being worked on
	OrderStatusDone       OrderStatus = "done"       // fulfilled
)

// Valid reports whether the status is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusDone:
		return true
	}
	return false
}

// Order is a customer's request to purchase a quantity of one product.
// Status is the only field mutated after creation.
type Order struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	ProductID     uint        `gorm:"not null;index" json:"product_id"`
	CustomerName  string      `gorm:"size:100;not null" json:"customer_name"`
	Email         string      `gorm:"size:254;not null" json:"email"`
	Phone         string      `gorm:"size:20;not null" json:"phone"`
	RingSize      string      `gorm:"size:10;not null" json:"ring_size"`
	EngravingText string      `gorm:"type:text" json:"engraving_text"`
	Quantity      int         `gorm:"not null;default:1" json:"quantity"`
	Status        OrderStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
