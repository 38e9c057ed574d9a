// Package apierror holds the JSON envelopes written for every 4xx/5xx answer.
// Store and driver errors never travel in them.
package apierror

const mensajeInterno = "Error interno del servidor"

// APIError is the envelope for a single message.
type APIError struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Interno is the 500 answer. The request id lets support find the log line.
func Interno(requestID string) *APIError {
	return &APIError{Detail: mensajeInterno, RequestID: requestID}
}

// ValidationError carries one rule name per offending field.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
