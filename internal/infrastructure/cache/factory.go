package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/infrastructure/config"
)

// NewDraftStore builds the draft store the config asks for. The memory
// store is the single-instance default; the redis store shares sessions
// across instances.
func NewDraftStore(cfg config.DraftConfig, redisCfg config.RedisConfig, logger *zap.Logger) (orders.DraftStore, error) {
	switch cfg.Store {
	case "memory":
		logger.Info("using in-memory draft store", zap.Duration("ttl", cfg.TTL))
		return NewInMemoryDraftStore(cfg.TTL), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		store, err := NewRedisDraftStore(client, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logger.Info("using redis draft store",
			zap.String("addr", redisCfg.Addr()),
			zap.Duration("ttl", cfg.TTL),
		)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown draft store %q", cfg.Store)
	}
}
