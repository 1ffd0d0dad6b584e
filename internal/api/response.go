// Package api defines the JSON envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body of every non-2xx response.
// Fields is set only for validation failures and maps a JSON field name to its message.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
