// Package cache stores rendered QR images and recipient lookups in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"splitpay/internal/models"
	"splitpay/internal/utils/cache"

	"github.com/redis/go-redis/v9"
)

// recipientTTL bounds how stale a cached recipient can be if an invalidation
// is lost.
const recipientTTL = 10 * time.Minute

// CacheService implements the paynow image cache and the recipient
// read-through cache on one redis client.
type CacheService struct {
	client   *redis.Client
	imageTTL time.Duration
}

func NewCacheService(client *redis.Client, imageTTL time.Duration) *CacheService {
	return &CacheService{
		client:   client,
		imageTTL: imageTTL,
	}
}

// GetImage returns the PNG stored under key. A miss is (nil, false, nil).
func (s *CacheService) GetImage(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := s.get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get image: %w", err)
	}
	return data, found, nil
}

// SetImage stores raw PNG bytes for the configured image TTL.
func (s *CacheService) SetImage(ctx context.Context, key string, png []byte) error {
	if err := s.client.Set(ctx, key, png, s.imageTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache image: %w", err)
	}
	return nil
}

func (s *CacheService) CacheRecipient(ctx context.Context, r *models.Recipient) error {
	if r == nil {
		return errors.New("cannot cache nil recipient")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode recipient: %w", err)
	}
	if err := s.client.Set(ctx, recipientKey(r.UserID), data, recipientTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache recipient: %w", err)
	}
	return nil
}

// GetRecipient returns the cached recipient for userID. UserID is not part of
// the JSON form, so it is restored from the key.
func (s *CacheService) GetRecipient(ctx context.Context, userID string) (*models.Recipient, bool, error) {
	data, found, err := s.get(ctx, recipientKey(userID))
	if err != nil || !found {
		return nil, false, err
	}
	var r models.Recipient
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false, fmt.Errorf("corrupt cached recipient %s: %w", userID, err)
	}
	r.UserID = userID
	return &r, true, nil
}

func (s *CacheService) InvalidateRecipient(ctx context.Context, userID string) error {
	return s.client.Del(ctx, recipientKey(userID)).Err()
}

func (s *CacheService) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func recipientKey(userID string) string {
	return cache.Key(cache.EntityRecipient, cache.KindUserID, userID)
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) GetStats(ctx context.Context) *redis.PoolStats {
	return s.client.PoolStats()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
