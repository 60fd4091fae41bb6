package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devsocial_backend/internal/api"
)

const (
	// HeaderToken is the request header carrying the session token.
	HeaderToken = "x-auth-token"
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"

	MsgMissingToken = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// TokenVerifier resolves a raw token to its claims.
// Following Go convention: interfaces are defined by the consumer.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

type userIDKey struct{}

// Authenticate resolves a raw header value to a user id.
// It returns ErrMissingToken for an absent value and ErrInvalidToken when verification fails.
func Authenticate(verifier TokenVerifier, header string) (string, error) {
	tokenStr := strings.TrimSpace(header)
	if tokenStr == "" {
		return "", ErrMissingToken
	}
	claims, err := verifier.Verify(tokenStr)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}

// AuthRequired returns a gin middleware that rejects requests without a valid
// token and otherwise attaches the user id to the gin and request contexts.
// It never touches storage.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Authenticate(verifier, c.GetHeader(HeaderToken))
		if err != nil {
			msg := MsgInvalidToken
			if errors.Is(err, ErrMissingToken) {
				msg = MsgMissingToken
			}
			slog.Debug("request rejected by auth gate", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Errors(msg))
			return
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by AuthRequired.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// UserID returns the authenticated user id for the current gin request.
func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
