package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and driver errors into a stable code and
// a message safe to show to callers. Sensitive details stay in the logs.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (postgres 23505).
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		if strings.Contains(errStr, "email") {
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already in use"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}

	// Foreign key constraint violation (postgres 23503).
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "The record is referenced by other data"}
		}
		if strings.Contains(errStr, "product_id") {
			return ErrorInfo{Code: ProductNotFound, Message: "The referenced product does not exist"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	// Not-null constraint violation (postgres 23502).
	if strings.Contains(errStr, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Service temporarily unavailable, please retry"}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

func notFoundMessage(context string) string {
	ctx := strings.ToLower(context)
	switch {
	case strings.Contains(ctx, "product"):
		return "Product not found"
	case strings.Contains(ctx, "order"):
		return "Order not found"
	case strings.Contains(ctx, "user"):
		return "User not found"
	}
	return "Requested record not found"
}

func defaultMessage(context string) string {
	ctx := strings.ToLower(context)
	switch {
	case strings.Contains(ctx, "create"):
		return "Failed to create the record, please retry"
	case strings.Contains(ctx, "update"):
		return "Failed to update the record, please retry"
	case strings.Contains(ctx, "delete"):
		return "Failed to delete the record, please retry"
	}
	return "An internal error occurred, please retry"
}
