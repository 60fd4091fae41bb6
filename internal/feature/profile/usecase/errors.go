// Package usecase implements the profile operations.
package usecase

import "errors"

var (
	// ErrProfileNotFound is returned when the user has no profile or the id is malformed.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotAuthorized is returned when the caller's account no longer exists.
	ErrNotAuthorized = errors.New("user not authorized")

	// ErrGitHubUserNotFound is returned when GitHub does not answer 200 for a username.
	ErrGitHubUserNotFound = errors.New("github user not found")
)
