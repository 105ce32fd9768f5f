package helpers

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. Returns nil when addr is empty
// so callers can run without Redis (rate limiting then fails open).
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
