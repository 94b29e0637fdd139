package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Payphone-Digital/jobboard/pkg/cache"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/Payphone-Digital/jobboard/pkg/redis"
)

// CacheService caches entity detail views. Redis is used when configured,
// otherwise an in-process cache. Cache failures are logged and treated as
// misses; they never fail a request.
type CacheService struct {
	redisClient *redis.Client
	local       *cache.Cache[[]byte]
	ttl         time.Duration
}

func NewCacheService(redisClient *redis.Client, ttl time.Duration) *CacheService {
	s := &CacheService{redisClient: redisClient, ttl: ttl}
	if redisClient == nil {
		s.local = cache.NewCache[[]byte](time.Minute)
	}
	return s
}

// Get decodes the cached value under key into dest and reports a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest any) bool {
	if s.redisClient != nil {
		found, err := s.redisClient.GetJSON(ctx, key, dest)
		if err != nil {
			logger.WarnWithContext(ctx, "Cache read failed").
				String("cache_key", key).
				Err(err).
				Log()
			return false
		}
		return found
	}

	data, found := s.local.Get(key)
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.local.Delete(key)
		return false
	}
	return true
}

func (s *CacheService) Set(ctx context.Context, key string, value any) {
	if s.redisClient != nil {
		if err := s.redisClient.SetJSON(ctx, key, value, s.ttl); err != nil {
			logger.WarnWithContext(ctx, "Cache write failed").
				String("cache_key", key).
				Err(err).
				Log()
		}
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.local.Set(key, data, s.ttl)
}

// Invalidate drops the given keys.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if s.redisClient != nil {
		if err := s.redisClient.Delete(ctx, keys...); err != nil {
			logger.WarnWithContext(ctx, "Cache invalidation failed").
				Strings("cache_keys", keys).
				Err(err).
				Log()
		}
		return
	}
	s.local.Delete(keys...)
}

// InvalidatePrefix drops every key under prefix.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	if s.redisClient != nil {
		if err := s.redisClient.DeleteByPattern(ctx, prefix+"*"); err != nil {
			logger.WarnWithContext(ctx, "Cache invalidation failed").
				String("cache_prefix", prefix).
				Err(err).
				Log()
		}
		return
	}
	s.local.DeletePrefix(prefix)
}

// Close releases the in-process cache.
func (s *CacheService) Close() {
	if s.local != nil {
		s.local.Close()
	}
}
