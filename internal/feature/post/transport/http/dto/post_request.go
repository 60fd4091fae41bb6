// Package dto defines the request bodies of the post endpoints.
package dto

// TextReq is the body of POST /api/posts and POST /api/posts/comment/:id.
type TextReq struct {
	Text string `json:"text"`
}
