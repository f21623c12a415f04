package apperrors

// ErrorCode identifies an error class independent of HTTP status.
type ErrorCode string

// Cross-cutting, non-domain codes.
const (
	// System and unknown errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes (used by factories)
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication and authorization
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"

	// Payment path
	CodePaymentNotComplete   ErrorCode = "PAYMENT_NOT_COMPLETE"
	CodeInvalidSignature     ErrorCode = "INVALID_SIGNATURE"
	CodeGatewayConfigMissing ErrorCode = "GATEWAY_CONFIG_MISSING"
	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"

	// Credit ledger
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
)
