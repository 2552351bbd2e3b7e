package redis

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the plan-catalog cache. The cache is optional: when
// REDIS_ADDR is unset the client stays nil and lookups fall through to the
// database.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, plan cache disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, plan cache disabled: %v", err)
		Client = nil
		return
	}
	log.Println("Connected to Redis")
}
