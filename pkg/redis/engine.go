package redis

import (
	"github.com/redis/go-redis/v9"
	"neocommerce.in/storefront/pkg/global"
)

func RedisClient(cfg *global.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
		Protocol: 2,
	})
}
