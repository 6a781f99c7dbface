package errors

import (
	"net/http"

	"github.com/jonathanpoaquiza/market-jals/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Credential-related errors. These prompt the client to re-authenticate
	// and are never retried server-side.
	ErrTokenMissing = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"No se proporcionó un token de autenticación",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"El token de autenticación ha expirado, inicie sesión nuevamente",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"El token de autenticación no es válido",
		"",
	)

	ErrTokenRevoked = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REVOKED",
		"El token de autenticación fue revocado",
		"",
	)

	ErrAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_FAILED",
		"La autenticación falló",
		"",
	)

	// Authorization errors. A role check failure never leaves a partial
	// effect; nothing is written before the check passes.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"No tiene permisos para realizar esta acción",
		"",
	)

	ErrSelfDemotion = NewBaseError(
		http.StatusForbidden,
		"SELF_DEMOTION",
		"Un administrador no puede quitarse su propio rol de administrador",
		"",
	)

	// Not-found errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No se encontró el usuario",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"No se encontró el producto",
		"",
	)

	ErrChatRoomNotFound = NewBaseError(
		http.StatusNotFound,
		"CHAT_ROOM_NOT_FOUND",
		"No se encontró la sala de chat",
		"",
	)

	ErrInvoiceNotFound = NewBaseError(
		http.StatusNotFound,
		"INVOICE_NOT_FOUND",
		"No se encontró la factura",
		"",
	)

	// Validation errors, rejected before any write.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Los datos de entrada no son válidos",
		"",
	)

	ErrProductNameEmpty = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_NAME_EMPTY",
		"El nombre del producto no puede estar vacío",
		"",
	)

	ErrProductPriceInvalid = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_PRICE_INVALID",
		"El precio del producto debe ser mayor que cero",
		"",
	)

	ErrProductStockInvalid = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_STOCK_INVALID",
		"El stock del producto no puede ser negativo",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"El rol indicado no es válido",
		"",
	)

	ErrMessageEmpty = NewBaseError(
		http.StatusBadRequest,
		"MESSAGE_EMPTY",
		"El mensaje no puede estar vacío",
		"",
	)

	ErrNotEnoughParticipants = NewBaseError(
		http.StatusBadRequest,
		"NOT_ENOUGH_PARTICIPANTS",
		"Una sala de chat requiere al menos dos participantes",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"El carrito está vacío",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del sistema",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)
)

// BackendUnavailableError represents a failed call to a managed backend
// service (identity provider, document store, message broker). It is not
// distinguished from other 500s at the API boundary.
type BackendUnavailableError struct {
	err     error
	details string
}

// NewBackendUnavailableError creates a backend-related error
func NewBackendUnavailableError(err error, details string) AppError {
	return &BackendUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *BackendUnavailableError) Error() string {
	return errors.Wrap(e.err, "backend call failed").Error()
}

// Unwrap exposes the wrapped backend error
func (e *BackendUnavailableError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *BackendUnavailableError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *BackendUnavailableError) ErrorCode() string {
	return "BACKEND_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *BackendUnavailableError) Message() string {
	return "El servicio no está disponible en este momento"
}

// Details returns detailed error information
func (e *BackendUnavailableError) Details() string {
	return e.details
}
