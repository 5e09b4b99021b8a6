package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/receipt-split/backend/internal/application/adapter"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

const lockKeyPrefix = "settlement:lock:user:"

// releaseScript deletes a lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisUserLocker implements adapter.UserLocker with one SET NX key per user.
type redisUserLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisUserLocker creates a locker whose locks expire after ttl.
func NewRedisUserLocker(client *redis.Client, ttl time.Duration) adapter.UserLocker {
	return &redisUserLocker{
		client: client,
		ttl:    ttl,
	}
}

// LockUsers acquires the locks in ID order so concurrent callers cannot deadlock.
func (l *redisUserLocker) LockUsers(ctx context.Context, userIDs []uuid.UUID) (func(), error) {
	token, err := newLockToken()
	if err != nil {
		return nil, err
	}

	keys := lockKeys(userIDs)
	acquired := make([]string, 0, len(keys))

	release := func() {
		// Release must work even when the request context is already cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, key := range acquired {
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				slog.Warn("failed to release user lock", "key", key, "error", err)
			}
		}
	}

	for _, key := range keys {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			release()
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if !ok {
			release()
			return nil, domainerror.ErrSettlementInProgress
		}
		acquired = append(acquired, key)
	}

	return release, nil
}

func lockKeys(userIDs []uuid.UUID) []string {
	seen := make(map[string]bool, len(userIDs))
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		key := lockKeyPrefix + id.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func newLockToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
