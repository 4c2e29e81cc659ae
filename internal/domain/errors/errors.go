package errors

import (
	"net/http"

	"lifelink/internal/errors"
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

// Predefined error types. User-facing messages stay in the network's
// language.
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No se encontró el usuario",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"Identidad ya persistida en la red",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"No se pudo registrar el usuario",
		"",
	)

	ErrInvalidBloodType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_BLOOD_TYPE",
		"Tipo de sangre desconocido",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Acceso denegado: correo o contraseña incorrectos",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Sesión inválida o expirada",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Error al procesar la contraseña",
		"",
	)

	// Listing rule errors
	ErrInvalidCategory = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CATEGORY",
		"Especialidad desconocida",
		"",
	)

	ErrInvalidPublishMode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PUBLISH_MODE",
		"Marco de recuperación desconocido",
		"",
	)

	ErrInvalidPrice = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PRICE",
		"El precio no puede ser negativo",
		"",
	)

	ErrPrescriptionRequired = NewBaseError(
		http.StatusBadRequest,
		"PRESCRIPTION_REQUIRED",
		"Se requiere receta física para validar fármacos",
		"",
	)

	ErrListingExpired = NewBaseError(
		http.StatusBadRequest,
		"LISTING_EXPIRED",
		"La fecha de caducidad ya pasó",
		"",
	)

	// Listing lifecycle errors
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"No se encontró la publicación",
		"",
	)

	ErrListingNotAvailable = NewBaseError(
		http.StatusConflict,
		"LISTING_NOT_AVAILABLE",
		"La publicación no está disponible para solicitudes",
		"",
	)

	ErrListingAlreadyReserved = NewBaseError(
		http.StatusConflict,
		"LISTING_ALREADY_RESERVED",
		"La donación ya fue comprometida con otro solicitante",
		"",
	)

	// Request lifecycle errors
	ErrRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"REQUEST_NOT_FOUND",
		"No se encontró la solicitud",
		"",
	)

	ErrRequestAlreadyCompleted = NewBaseError(
		http.StatusConflict,
		"REQUEST_ALREADY_COMPLETED",
		"La solicitud ya fue finalizada",
		"",
	)

	ErrReviewRequiresCompletion = NewBaseError(
		http.StatusConflict,
		"REVIEW_REQUIRES_COMPLETION",
		"Solo se puede evaluar una entrega en proceso o finalizada",
		"",
	)

	ErrAlreadyReviewed = NewBaseError(
		http.StatusConflict,
		"ALREADY_REVIEWED",
		"La solicitud ya fue evaluada",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Los datos enviados no son válidos",
		"",
	)

	// Upstream dependency errors
	ErrUpstreamFailed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_FAILED",
		"Un servicio externo no respondió",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Falló la transacción de base de datos",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del sistema",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acceso restringido",
		"",
	)

	ErrNotParticipant = NewBaseError(
		http.StatusForbidden,
		"NOT_PARTICIPANT",
		"Solo los participantes de la solicitud pueden entrar al canal",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Falló la ejecución en base de datos"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
