// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/adapter"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

const (
	accessTokenType = "access"
	clockSkew       = 30 * time.Second
)

// AccessClaims is the payload of an access token. The user is the subject.
type AccessClaims struct {
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewTokenService signs and checks HS256 access tokens. An empty issuer
// accepts tokens from any issuer.
func NewTokenService(secret, issuer string) adapter.TokenService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &tokenService{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}
}

func (s *tokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	var claims AccessClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domainerror.ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	// Tokens minted by an external identity provider may omit token_type.
	if claims.TokenType != "" && claims.TokenType != accessTokenType {
		return nil, fmt.Errorf("%w: %s token used for access", domainerror.ErrInvalidToken, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
