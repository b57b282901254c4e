package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectCache opens a Redis client for the guest cart store and verifies
// connectivity with a ping.
func ConnectCache(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
