package cartline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const guestKeyPrefix = "cart:guest:"

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns the guest line store. Each guest cart lives as one JSON
// document under its session id, with the TTL refreshed on every write. This
// side mirrors browser-local storage: a single document rewritten whole, no
// per-line writes.
func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func (r *redisRepo) List(ctx context.Context, ownerID string) ([]domain.LineItem, error) {
	raw, err := r.client.Get(ctx, guestKeyPrefix+ownerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var lines []domain.LineItem
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode guest cart %s: %w", ownerID, err)
	}
	return lines, nil
}

func (r *redisRepo) Upsert(ctx context.Context, ownerID string, line domain.LineItem) error {
	lines, err := r.List(ctx, ownerID)
	if err != nil {
		return err
	}

	merged := false
	key := line.MergeKey()
	for i := range lines {
		if lines[i].MergeKey() == key {
			lines[i].Quantity += line.Quantity
			lines[i].UnitPriceCents = line.UnitPriceCents
			lines[i].Discounted = line.Discounted
			lines[i].DiscountPriceCents = line.DiscountPriceCents
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}

	return r.store(ctx, ownerID, lines)
}

func (r *redisRepo) Remove(ctx context.Context, ownerID, lineID string) error {
	lines, err := r.List(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := lines[:0]
	for _, l := range lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		// Absent line: no-op.
		return nil
	}
	return r.store(ctx, ownerID, kept)
}

func (r *redisRepo) Clear(ctx context.Context, ownerID string) error {
	return r.client.Del(ctx, guestKeyPrefix+ownerID).Err()
}

func (r *redisRepo) store(ctx context.Context, ownerID string, lines []domain.LineItem) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, guestKeyPrefix+ownerID, raw, r.ttl).Err()
}
