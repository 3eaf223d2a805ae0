// Package cache provides a Redis-backed event cache keyed by slug.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"deveventhub/internal/domain"
)

const slugKeyPrefix = "event:slug:"

// EventCache implements domain.EventCache on top of Redis. Entries expire
// after ttl so a stale entry is bounded even if an invalidation is lost.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{client: client, ttl: ttl}
}

func slugKey(slug string) string {
	return slugKeyPrefix + slug
}

func (c *EventCache) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	payload, err := c.client.Get(ctx, slugKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	event := &domain.Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return event, nil
}

func (c *EventCache) Set(ctx context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, slugKey(event.Slug), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *EventCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, slugKey(slug)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
