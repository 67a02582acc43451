// Package repository holds storage contracts and their Redis-backed implementation.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/itinerary-planner/internal/config"
	"github.com/maxviazov/itinerary-planner/internal/model"
)

const keyPrefix = "itinerary:"

// RedisCache keeps itineraries as JSON strings with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// New connects to Redis and verifies the connection before returning.
func New(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger) (*RedisCache, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// bounded ping so startup never hangs on an unreachable server
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Dur("ttl", cfg.TTL).
		Msg("Successfully connected to Redis")

	return NewRedisCache(client, cfg.TTL, *logger), nil
}

// NewRedisCache wraps an existing client; used by New and by tests.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    logger.With().Str("module", "repository").Str("component", "redis").Logger(),
	}
}

// CacheKey normalizes a destination into its Redis key.
func CacheKey(destination string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(destination))
}

func (r *RedisCache) Get(ctx context.Context, destination string) (model.Itinerary, error) {
	raw, err := r.client.Get(ctx, CacheKey(destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Itinerary{}, ErrNotFound
	}
	if err != nil {
		return model.Itinerary{}, fmt.Errorf("redis get: %w", err)
	}

	var it model.Itinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		// a corrupt entry behaves like a miss; the next Set overwrites it
		r.log.Warn().Err(err).Str("destination", destination).Msg("dropping undecodable cache entry")
		return model.Itinerary{}, ErrNotFound
	}
	return it, nil
}

func (r *RedisCache) Set(ctx context.Context, destination string, it model.Itinerary) error {
	raw, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	if err := r.client.Set(ctx, CacheKey(destination), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NoopCache never stores anything; used when Redis is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (model.Itinerary, error) {
	return model.Itinerary{}, ErrNotFound
}
func (NoopCache) Set(context.Context, string, model.Itinerary) error { return nil }
func (NoopCache) Ping(context.Context) error                         { return nil }
func (NoopCache) Close() error                                       { return nil }

var (
	_ ItineraryCache = (*RedisCache)(nil)
	_ ItineraryCache = NoopCache{}
)
