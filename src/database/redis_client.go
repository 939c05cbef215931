package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var RedisURI string
var RedisCtx = context.Background()

// InitRedis connects to Redis when REDIS_URI is set. Redis is optional: it
// backs the email queue and the form snapshot cache, and both degrade to
// synchronous/uncached behavior without it.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Queueing and caching are disabled.")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr: RedisURI,
		DB:   0,
	})
	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		RedisClient = nil
		return
	}
	log.Println("✅ Redis connected successfully")
}
