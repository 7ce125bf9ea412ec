package ledger

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/property-registry/internal/config"
)

// Redis is a go-redis backed ledger. Apply uses MULTI/EXEC so a batch of
// writes becomes visible as one unit.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{client: client}
}

// Get fetches the value stored under key.
func (r *Redis) Get(ctx context.Context, key Key) ([]byte, error) {
	value, err := r.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyAbsent
		}
		return nil, err
	}
	return value, nil
}

// Put stores a single value.
func (r *Redis) Put(ctx context.Context, key Key, value []byte) error {
	return r.client.Set(ctx, key.String(), value, 0).Err()
}

// Apply commits all writes inside one MULTI/EXEC transaction.
func (r *Redis) Apply(ctx context.Context, writes []Write) error {
	pipe := r.client.TxPipeline()
	for _, w := range writes {
		pipe.Set(ctx, w.Key.String(), w.Value, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
