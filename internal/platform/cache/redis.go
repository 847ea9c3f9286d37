package cache

import (
	"context"
	"time"

	"codetrack/internal/platform/config"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var RDB *redis.Client

const revokedTokenPrefix = "revoked_token:"

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("could not connect to Redis: %v", err)
	}
	log.Info("connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Info("Redis connection closed")
	}
}

// RevokeToken denylists a token id until its natural expiry. Logged-out
// tokens stay unusable without keeping any long-lived server session state.
func RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return RDB.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
}

func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := RDB.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
