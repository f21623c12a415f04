package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain errors of the order,
// payment and credit subsystems.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidTransition rejects a state-machine move out of a terminal or
// incompatible order status. Distinct from the idempotent replay no-op:
// a replay of an already-settled callback succeeds silently, an operator
// forcing refunded->paid gets this.
func ErrInvalidTransition(from, to string) *AppError {
	return New(CodeConflict, "order", "Cannot transition order from '"+from+"' to '"+to+"'", http.StatusConflict)
}

// Payment gateway callback errors. Signature verification fails closed:
// any mismatch rejects, never degrades to acceptance.
var (
	ErrMissingCallbackData = New(CodeValidationFailed, "payment", "Missing callback data", http.StatusBadRequest)
	ErrPaymentNotComplete  = New(CodePaymentNotComplete, "payment", "Payment status is not complete", http.StatusBadRequest)
	ErrGatewayConfig       = New(CodeGatewayConfigMissing, "payment", "Payment gateway is not configured", http.StatusInternalServerError)
	ErrInvalidSignature    = New(CodeInvalidSignature, "payment", "Callback signature verification failed", http.StatusBadRequest)
	ErrOrderNotFound       = New(CodeOrderNotFound, "payment", "No order matches the callback transaction id", http.StatusNotFound)
)

// Checkout and catalog errors.
var (
	ErrItemNotFound        = New(CodeNotFound, "catalog", "Catalog item not found", http.StatusNotFound)
	ErrInvalidItemCategory = New(CodeValidationFailed, "checkout", "Unknown item category", http.StatusBadRequest)
)

// Credit ledger errors.
var (
	ErrInsufficientCredits = New(CodeInsufficientCredits, "credits", "Insufficient credit balance", http.StatusBadRequest)
	ErrInvalidCreditAmount = New(CodeValidationFailed, "credits", "Credit amount must be positive", http.StatusBadRequest)
)
