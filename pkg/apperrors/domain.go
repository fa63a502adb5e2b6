package apperrors

import "net/http"

// Contact intake errors. Their Message is the exact text returned to the
// client in the contact response envelope.
var (
	ErrInvalidJSON = New(
		CodeMalformedInput,
		"contact",
		"Invalid JSON",
		http.StatusBadRequest,
	)

	ErrContactFieldsRequired = New(
		CodeValidationFailed,
		"contact",
		"Name, email and message are required",
		http.StatusBadRequest,
	)

	ErrContactBodyTooLarge = New(
		CodeMalformedInput,
		"contact",
		"Request body too large",
		http.StatusRequestEntityTooLarge,
	)

	ErrTooManyRequests = New(
		CodeRateLimited,
		"contact",
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

// ErrContactFieldTooLong is a contact validation failure for an oversized field.
func ErrContactFieldTooLong(field string) *AppError {
	return New(CodeValidationFailed, "contact", field+" is too long", http.StatusBadRequest)
}
