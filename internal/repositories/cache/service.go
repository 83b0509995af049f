package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"handshake/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Transaction snapshot caching. The poll endpoint is read-heavy, so the
// latest record is kept here and dropped on every state-changing write.
func (s *CacheService) CacheTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("cannot cache nil transaction")
	}
	return s.Set(ctx, s.GenerateKey("transaction", "id", tx.ID), tx)
}

func (s *CacheService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	found, err := s.Get(ctx, s.GenerateKey("transaction", "id", id), &tx)
	if err != nil || !found {
		return nil, err
	}
	return &tx, nil
}

func (s *CacheService) InvalidateTransaction(ctx context.Context, id string) error {
	return s.Delete(ctx, s.GenerateKey("transaction", "id", id))
}

// Advisory price evaluations are ephemeral: they are never persisted,
// only parked here briefly so a seller accepting "the AI's number" a few
// seconds later can still resolve it.
func (s *CacheService) CacheEvaluation(ctx context.Context, txID string, fairMarketValue int64) error {
	return s.SetWithTTL(ctx, s.GenerateKey("evaluation", "tx", txID), fairMarketValue, 15*time.Minute)
}

func (s *CacheService) GetEvaluation(ctx context.Context, txID string) (int64, bool, error) {
	var fmv int64
	found, err := s.Get(ctx, s.GenerateKey("evaluation", "tx", txID), &fmv)
	if err != nil {
		return 0, false, err
	}
	return fmv, found, nil
}

// Health check
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
