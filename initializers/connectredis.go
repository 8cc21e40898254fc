package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// ConnectRedis establishes the session-store connection. A failed ping is
// logged but not fatal: without Redis the API still serves requests, it just
// cannot revoke tokens before they expire.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0, // use default DB
	})

	if _, err := Client.Ping(context.Background()).Result(); err != nil {
		log.Println("redis connection establishment failed", err)
		Client = nil
	}
}
