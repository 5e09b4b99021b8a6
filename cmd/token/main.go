// Command token mints an access token for a user, for operators and local testing.
//
//	token -user 3f6c2a9e-8d4b-4c1a-9e7f-2b5d8c0a1e34 -ttl 1h
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/receipt-split/backend/config"
	"github.com/receipt-split/backend/internal/integration/adapters"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	userFlag := flag.String("user", "", "user ID to issue the token for")
	ttl := flag.Duration("ttl", cfg.JWT.AccessTokenExpiry, "token lifetime")
	flag.Parse()

	if err := run(cfg.JWT, *userFlag, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(cfg config.JWTConfig, user string, ttl time.Duration) error {
	if cfg.Secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	userID, err := uuid.Parse(user)
	if err != nil {
		return fmt.Errorf("invalid -user %q: %w", user, err)
	}

	tokens := adapters.NewTokenService(cfg.Secret, cfg.Issuer)
	token, err := tokens.GenerateAccessToken(context.Background(), userID, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Println(token)
	return nil
}
