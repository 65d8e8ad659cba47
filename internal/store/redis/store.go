package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wfdscore/internal/report"
)

// DefaultResultTTL is used when SaveResult is given no TTL (24 hours)
const DefaultResultTTL = 24 * time.Hour

// Store handles Redis operations for scored results
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveResult stores an ad-hoc result under its content hash
func (s *Store) SaveResult(ctx context.Context, result *report.Result, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ResultKey(result.Key), data, ttl)
	pipe.SAdd(ctx, AllResultsKey(), result.Key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// GetResult retrieves a result by content hash. A miss returns nil, nil.
func (s *Store) GetResult(ctx context.Context, hash string) (*report.Result, error) {
	data, err := s.client.Get(ctx, ResultKey(hash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result report.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// GetAllResults retrieves every result still alive in Redis.
// Hashes whose key already expired are removed from the set.
func (s *Store) GetAllResults(ctx context.Context) ([]*report.Result, error) {
	hashes, err := s.client.SMembers(ctx, AllResultsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get result hashes: %w", err)
	}

	results := make([]*report.Result, 0, len(hashes))
	for _, hash := range hashes {
		result, err := s.GetResult(ctx, hash)
		if err != nil {
			// Skip results that couldn't be decoded
			continue
		}
		if result == nil {
			_ = s.client.SRem(ctx, AllResultsKey(), hash).Err()
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// DeleteResult removes a result from Redis
func (s *Store) DeleteResult(ctx context.Context, hash string) error {
	if err := s.client.Del(ctx, ResultKey(hash)).Err(); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	if err := s.client.SRem(ctx, AllResultsKey(), hash).Err(); err != nil {
		return fmt.Errorf("failed to remove result from set: %w", err)
	}

	return nil
}

// SaveLive stores the live result without expiry
func (s *Store) SaveLive(ctx context.Context, result *report.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal live result: %w", err)
	}

	if err := s.client.Set(ctx, KeyLive, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save live result: %w", err)
	}

	return nil
}

// GetLive retrieves the live result. A miss returns nil, nil.
func (s *Store) GetLive(ctx context.Context) (*report.Result, error) {
	data, err := s.client.Get(ctx, KeyLive).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get live result: %w", err)
	}

	var result report.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal live result: %w", err)
	}

	return &result, nil
}

// DeleteLive removes the live result
func (s *Store) DeleteLive(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyLive).Err(); err != nil {
		return fmt.Errorf("failed to delete live result: %w", err)
	}

	return nil
}
