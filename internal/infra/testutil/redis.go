package testutil

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts a miniredis server and returns a client connected to it.
func NewRedis() (*redis.Client, *miniredis.Miniredis) {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return conn, miniRedis
}

// ClearRedis removes every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
