package db

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_URL is not configured. Callers treat a
// nil client as "caching disabled" and read through to Postgres.
func ConnectRedis() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, caching disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("Redis connection failed, caching disabled:", err)
		return nil
	}

	log.Println("✅ Connected to Redis")
	return client
}
