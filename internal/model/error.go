package model

import "errors"

// Application-level sentinel errors. Services return these (possibly wrapped
// in an AppError) and webutil maps them to HTTP status codes.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("resource conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInternalServer    = errors.New("internal server error")
	ErrExtractionEmpty   = errors.New("no words extracted from image")
	ErrMetadataMissing   = errors.New("english metadata missing")
	ErrUnsupportedRating = errors.New("unsupported rating")
)

// ErrorDetail is the error payload returned to API clients.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse is the envelope for error responses.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError carries a client-facing error detail together with the wrapped
// sentinel error used for status code mapping.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
