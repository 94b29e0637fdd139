package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/pkg/circuit"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrUnavailable wraps calls rejected because the circuit is open.
var ErrUnavailable = errors.New("redis unavailable")

// Client wraps go-redis with JSON helpers. Every command runs through a
// circuit breaker so a dead server costs one failed call per cooldown
// instead of one timeout per request.
type Client struct {
	rdb     *redis.Client
	breaker *circuit.Breaker
}

func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	client := NewFromClient(rdb, circuit.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		logger.GetLogger().Error("Failed to connect to Redis",
			zap.String("address", cfg.RedisAddress()),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetLogger().Info("Successfully connected to Redis",
		zap.String("address", cfg.RedisAddress()),
		zap.Int("database", cfg.Redis.Database),
	)

	return client, nil
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(rdb *redis.Client, breaker circuit.Config) *Client {
	return &Client{
		rdb:     rdb,
		breaker: circuit.NewBreaker("redis", breaker, logger.GetLogger()),
	}
}

// Ping bypasses the breaker so health checks see the real server state.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) BreakerState() circuit.State {
	return c.breaker.State()
}

func (c *Client) do(fn func() error) error {
	err := c.breaker.Execute(fn)
	if errors.Is(err, circuit.ErrOpen) || errors.Is(err, circuit.ErrTrialInFlight) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// SetJSON stores value as JSON under key.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache item: %w", err)
	}

	err = c.do(func() error {
		return c.rdb.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		logger.GetLogger().Error("Failed to set cache",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
		return fmt.Errorf("failed to set cache: %w", err)
	}

	logger.GetLogger().Debug("Cache set",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
		zap.Int("data_size", len(data)),
	)
	return nil
}

// GetJSON decodes the value under key into dest. found is false on a miss.
func (c *Client) GetJSON(ctx context.Context, key string, dest any) (found bool, err error) {
	var data []byte
	err = c.do(func() error {
		var getErr error
		data, getErr = c.rdb.Get(ctx, key).Bytes()
		if errors.Is(getErr, redis.Nil) {
			// a miss is a healthy answer
			data = nil
			return nil
		}
		return getErr
	})
	if err != nil {
		logger.GetLogger().Error("Failed to get cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to get cache: %w", err)
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A stale shape is a miss; drop it so the next write replaces it.
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// Delete removes cache entries
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := c.do(func() error {
		return c.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		logger.GetLogger().Error("Failed to delete cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// DeleteByPattern removes cache entries matching pattern. SCAN is used so a
// large keyspace does not block the server.
func (c *Client) DeleteByPattern(ctx context.Context, pattern string) error {
	var keys []string
	err := c.do(func() error {
		iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		return iter.Err()
	})
	if err != nil {
		return fmt.Errorf("failed to scan keys by pattern: %w", err)
	}

	for start := 0; start < len(keys); start += 100 {
		end := min(start+100, len(keys))
		if err := c.Delete(ctx, keys[start:end]...); err != nil {
			return err
		}
	}

	logger.GetLogger().Debug("Cache deleted by pattern",
		zap.String("pattern", pattern),
		zap.Int("deleted_count", len(keys)),
	)
	return nil
}

// SlidingWindow records a hit at now in the sorted set under key, drops hits
// older than window and returns how many remain.
func (c *Client) SlidingWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	var card *redis.IntCmd
	err := c.do(func() error {
		_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
			pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
			card = pipe.ZCard(ctx, key)
			pipe.Expire(ctx, key, window)
			return nil
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return card.Val(), nil
}
