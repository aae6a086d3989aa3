package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateIdentifier = "DUPLICATE_IDENTIFIER"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidState        = "INVALID_STATE"

	// Server errors (5xx)
	CodeStoreFailure  = "STORE_FAILURE"
	CodeInternalError = "INTERNAL_ERROR"
)
