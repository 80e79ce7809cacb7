package errors

import (
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrQueryExecution ErrorCode = iota + 1000
	ErrResultFetch
	ErrDelivery
	ErrDegenerateRow
	ErrInternal
)

// Error constructors
func QueryExecution(err error) *AppError {
	return &AppError{
		Code:    ErrQueryExecution,
		Message: "analytics query execution failed",
		Err:     err,
	}
}

func ResultFetch(location string, err error) *AppError {
	return &AppError{
		Code:    ErrResultFetch,
		Message: fmt.Sprintf("failed to fetch query result from %s", location),
		Err:     err,
	}
}

func Delivery(brand string, err error) *AppError {
	return &AppError{
		Code:    ErrDelivery,
		Message: fmt.Sprintf("report delivery failed for brand %s", brand),
		Err:     err,
	}
}

func DegenerateRow(productID int64, err error) *AppError {
	return &AppError{
		Code:    ErrDegenerateRow,
		Message: fmt.Sprintf("degenerate candidate row for product %d", productID),
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}
