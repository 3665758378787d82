package apperror

import "net/http"

// AppError is an error carrying the HTTP status and client-safe message it
// should be rendered with. Err holds the internal detail for server-side
// logging and is never serialized.
type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Codes   []string `json:"codes,omitempty"` // provider/sentinel error codes
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// VerificationFailed is a 400 that also surfaces the verification
// provider's error codes.
func VerificationFailed(message string, codes []string) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	e.Codes = codes
	return e
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}
