package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/domain/shared"
	"github.com/venuebook/backend/internal/infrastructure/config"
)

const ruleSetKey = "venuebook:cancellation_rules"

// NewRedisClient creates a Redis client from configuration and verifies
// the connection.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisRuleCache caches the cancellation rule set in Redis as a single
// JSON snapshot. Rules are reference data that changes rarely, so the whole
// set is cached under one key with a TTL. Any Redis failure falls through
// to the underlying source; the cache never makes rule resolution fail.
type RedisRuleCache struct {
	client *redis.Client
	source booking.RuleSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisRuleCache creates a caching decorator around a rule source.
func NewRedisRuleCache(client *redis.Client, source booking.RuleSource, ttl time.Duration, logger *zap.Logger) *RedisRuleCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRuleCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedRule is the JSON shape of a rule in the cache snapshot
type cachedRule struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	MinDaysBefore  int             `json:"min_days_before"`
	MaxDaysBefore  *int            `json:"max_days_before,omitempty"`
	PenaltyPercent decimal.Decimal `json:"penalty_percent"`
}

// FindAll returns the rule set, serving from Redis when the snapshot is
// fresh and reloading from the source otherwise.
func (c *RedisRuleCache) FindAll(ctx context.Context) ([]booking.CancellationRule, error) {
	payload, err := c.client.Get(ctx, ruleSetKey).Result()
	if err == nil {
		rules, unmarshalErr := decodeRuleSet(payload)
		if unmarshalErr == nil {
			return rules, nil
		}
		c.logger.Warn("discarding corrupt rule set snapshot", zap.Error(unmarshalErr))
	} else if err != redis.Nil {
		c.logger.Warn("rule cache read failed, falling back to source", zap.Error(err))
	}

	rules, err := c.source.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if setErr := c.store(ctx, rules); setErr != nil {
		c.logger.Warn("rule cache write failed", zap.Error(setErr))
	}

	return rules, nil
}

// Invalidate drops the cached snapshot so the next read reloads from the
// source. Called after rule maintenance writes.
func (c *RedisRuleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, ruleSetKey).Err()
}

func (c *RedisRuleCache) store(ctx context.Context, rules []booking.CancellationRule) error {
	snapshot := make([]cachedRule, len(rules))
	for i, r := range rules {
		snapshot[i] = cachedRule{
			ID:             r.ID,
			Name:           r.Name,
			MinDaysBefore:  r.MinDaysBefore,
			MaxDaysBefore:  r.MaxDaysBefore,
			PenaltyPercent: r.PenaltyPercent,
		}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ruleSetKey, payload, c.ttl).Err()
}

func decodeRuleSet(payload string) ([]booking.CancellationRule, error) {
	var snapshot []cachedRule
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, err
	}
	rules := make([]booking.CancellationRule, len(snapshot))
	for i, s := range snapshot {
		rules[i] = booking.CancellationRule{
			BaseEntity:     shared.BaseEntity{ID: s.ID},
			Name:           s.Name,
			MinDaysBefore:  s.MinDaysBefore,
			MaxDaysBefore:  s.MaxDaysBefore,
			PenaltyPercent: s.PenaltyPercent,
		}
	}
	return rules, nil
}

// Ensure RedisRuleCache implements RuleSource
var _ booking.RuleSource = (*RedisRuleCache)(nil)
