package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string
type ProductMaterial string

const (
	CategoryWeddingRing    ProductCategory = "wedding_ring"
	CategoryEngagementRing ProductCategory = "engagement_ring"

	MaterialGold      ProductMaterial = "gold"
	MaterialSilver    ProductMaterial = "silver"
	MaterialPlatinum  ProductMaterial = "platinum"
	MaterialWhiteGold ProductMaterial = "white_gold"
	MaterialRoseGold  ProductMaterial = "rose_gold"
)

// Valid reports whether the category is one of the known ring types.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryWeddingRing, CategoryEngagementRing:
		return true
	}
	return false
}

// Valid reports whether the material is one of the supported alloys.
func (m ProductMaterial) Valid() bool {
	switch m {
	case MaterialGold, MaterialSilver, MaterialPlatinum, MaterialWhiteGold, MaterialRoseGold:
		return true
	}
	return false
}

// Product is a purchasable ring. Price is stored as decimal(10,2);
// ImageKey is the storage key of the product photo, empty when the
// product has no image.
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(20);not null" json:"category"`
	Material    ProductMaterial `gorm:"type:varchar(20);not null" json:"material"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageKey    string          `gorm:"size:255" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Orders cannot outlive their product.
	Orders []Order `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
