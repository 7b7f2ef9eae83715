package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field errors under the wire name, not the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// OrderInput is the normalized untrusted order submission. Both the web
// form and the JSON API bind into this shape and run the same
// validation, so the two entry points cannot drift apart.
type OrderInput struct {
	ProductID     uint   `json:"product_id" form:"product_id" validate:"required"`
	CustomerName  string `json:"customer_name" form:"customer_name" validate:"required,max=100"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Phone         string `json:"phone" form:"phone" validate:"required,max=20"`
	RingSize      string `json:"ring_size" form:"ring_size" validate:"required,max=10"`
	EngravingText string `json:"engraving_text" form:"engraving_text"`
	// nil means "not provided"; the order defaults to quantity 1.
	Quantity *int `json:"quantity" form:"quantity" validate:"omitempty,min=1"`
}

// ValidationError rejects an order submission with per-field reasons.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	return "invalid order input: " + strings.Join(parts, "; ")
}

// ValidateOrderInput runs the field-level checks and returns a
// field → reason map, empty when the input is acceptable.
func ValidateOrderInput(input OrderInput) map[string]string {
	fields := make(map[string]string)

	err := validate.Struct(input)
	if err == nil {
		return fields
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fields["input"] = "invalid"
		return fields
	}

	for _, fe := range ve {
		fields[fe.Field()] = fieldReason(fe)
	}
	return fields
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "too long"
	case "email":
		return "invalid format"
	case "min":
		return "must be at least 1"
	default:
		return "invalid"
	}
}
