// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserIDKey is the context key for the authenticated user's ID.
const UserIDKey ContextKey = "user_id"

// AuthMiddleware rejects requests without a valid bearer access token.
type AuthMiddleware struct {
	tokens adapter.TokenService
}

func NewAuthMiddleware(tokens adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate stores the token subject under UserIDKey.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, authErr := m.authenticate(c)
		if authErr != nil {
			c.Header("WWW-Authenticate", `Bearer realm="receipt-split"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (uuid.UUID, *domainerror.AuthError) {
	token, authErr := bearerToken(c.GetHeader("Authorization"))
	if authErr != nil {
		return uuid.Nil, authErr
	}

	claims, err := m.tokens.ValidateAccessToken(c.Request.Context(), token)
	switch {
	case errors.Is(err, domainerror.ErrExpiredToken):
		return uuid.Nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "Token has expired", err)
	case err != nil:
		return uuid.Nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "Invalid or expired token", err)
	}
	return claims.UserID, nil
}

// bearerToken extracts the credentials of a "Bearer <token>" header.
func bearerToken(header string) (string, *domainerror.AuthError) {
	if header == "" {
		return "", domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Authorization header is required", nil)
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "Invalid authorization header format", nil)
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Token is required", nil)
	}
	return token, nil
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
