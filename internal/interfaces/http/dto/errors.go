package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidInput is used when request input violates a domain rule
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when stock cannot cover a request
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Validation
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Resource
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rules
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 if the error code is not mapped
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps the codes emitted by the domain layer to the
// standardized ERR_* codes used on the wire.
var LegacyErrorCodeMapping = map[string]string{
	// Lookups
	"NOT_FOUND":           ErrCodeNotFound,
	"ITEM_NOT_FOUND":      ErrCodeNotFound,
	"ITEM_NOT_IN_ORDER":   ErrCodeNotFound,
	"PRODUCT_NOT_STOCKED": ErrCodeNotFound,

	// Duplicates and races
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	// Input validation
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_REQUEST":         ErrCodeInvalidInput,
	"INVALID_QUANTITY":        ErrCodeInvalidInput,
	"INVALID_SKU":             ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_CODE":            ErrCodeInvalidInput,
	"INVALID_UNIT":            ErrCodeInvalidInput,
	"INVALID_PRICE":           ErrCodeInvalidInput,
	"INVALID_COST":            ErrCodeInvalidInput,
	"INVALID_LEAD_TIME":       ErrCodeInvalidInput,
	"INVALID_THRESHOLD":       ErrCodeInvalidInput,
	"INVALID_CUSTOMER":        ErrCodeInvalidInput,
	"INVALID_PRODUCT":         ErrCodeInvalidInput,
	"INVALID_SUPPLIER":        ErrCodeInvalidInput,
	"INVALID_WAREHOUSE":       ErrCodeInvalidInput,
	"INVALID_ORDER":           ErrCodeInvalidInput,
	"INVALID_STATUS":          ErrCodeInvalidInput,
	"INVALID_ALLOCATION":      ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":    ErrCodeInvalidInput,
	"INVALID_PO_NUMBER":       ErrCodeInvalidInput,
	"INVALID_SHIPMENT_NUMBER": ErrCodeInvalidInput,
	"INVALID_RETURN_NUMBER":   ErrCodeInvalidInput,
	"SAME_WAREHOUSE":          ErrCodeInvalidInput,
	"NO_ITEMS":                ErrCodeInvalidInput,

	// State machine violations
	"INVALID_STATE":        ErrCodeInvalidState,
	"ALREADY_CANCELLED":    ErrCodeInvalidState,
	"ALREADY_ACTIVE":       ErrCodeInvalidState,
	"ALREADY_INACTIVE":     ErrCodeInvalidState,
	"ALREADY_DISCONTINUED": ErrCodeInvalidState,
	"CANNOT_ACTIVATE":      ErrCodeInvalidState,
	"NOT_ACTIVE":           ErrCodeInvalidState,
	"PRODUCT_INACTIVE":     ErrCodeInvalidState,
	"SUPPLIER_INACTIVE":    ErrCodeInvalidState,
	"NO_WAREHOUSE":         ErrCodeInvalidState,

	// Business rules
	"EXCEEDS_ORDERED":    ErrCodeBusinessRule,
	"EXCEEDS_REMAINING":  ErrCodeBusinessRule,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
