// Package domain holds the post feature's domain errors.
package domain

import "errors"

var (
	// ErrPostNotFound is returned when no post has the id, including malformed ids.
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when the post has no comment with the id.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthorized is returned when the caller does not own the post or comment.
	ErrNotAuthorized = errors.New("user not authorized")

	// ErrAlreadyLiked is returned when the caller already likes the post.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked is returned when the caller unlikes a post it does not like.
	ErrNotLiked = errors.New("post has not yet been liked")
)
