// Package api defines the JSON bodies shared by every HTTP handler.
package api

// ErrorItem is a single client-facing error message.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the body of every failed request: {"errors":[{"msg":"..."}]}.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// Errors builds an ErrorResponse with one item per message.
func Errors(msgs ...string) ErrorResponse {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	return ErrorResponse{Errors: items}
}

// MessageResponse acknowledges an operation that has no resource to return.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MsgServerError is returned for storage and other unexpected failures.
const MsgServerError = "Server Error"
