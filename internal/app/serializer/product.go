package serializer

import (
	"strings"
	"time"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
)

// ProductResponse is the public catalog representation. Price is a
// fixed-point decimal string with two places; Image is an absolute URL
// or null when no image has been attached.
type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Material    string  `json:"material"`
	Price       string  `json:"price"`
	Image       *string `json:"image"`
	CreatedAt   string  `json:"created_at"`
}

type ProductSerializer struct {
	imageBaseURL string
}

func NewProductSerializer(imageBaseURL string) *ProductSerializer {
	return &ProductSerializer{
		imageBaseURL: strings.TrimSuffix(imageBaseURL, "/"),
	}
}

func (s *ProductSerializer) Serialize(product *model.Product) ProductResponse {
	var image *string
	if product.ImageKey != "" {
		url := s.ImageURL(product.ImageKey)
		image = &url
	}

	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    string(product.Category),
		Material:    string(product.Material),
		Price:       product.Price.StringFixed(2),
		Image:       image,
		CreatedAt:   product.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// SerializeList never returns nil so an empty catalog encodes as [].
func (s *ProductSerializer) SerializeList(products []model.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, s.Serialize(&products[i]))
	}
	return responses
}

func (s *ProductSerializer) ImageURL(key string) string {
	return s.imageBaseURL + "/" + strings.TrimPrefix(key, "/")
}
