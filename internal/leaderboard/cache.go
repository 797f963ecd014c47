package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis cache for the top score list. Short TTL plus invalidation on every
// save keeps the leaderboard fresh without hitting Postgres on each read.

const topScoresKey = "leaderboard:top"
const topScoresTTL = 60 * time.Second

type ScoreCache interface {
	GetTop() ([]ScoreEntry, bool)
	SetTop(entries []ScoreEntry)
	Invalidate()
}

type RedisScoreCache struct {
	db *redis.Client
}

func NewRedisScoreCache(db *redis.Client) *RedisScoreCache {
	return &RedisScoreCache{db: db}
}

func (c *RedisScoreCache) GetTop() ([]ScoreEntry, bool) {
	ctx := context.Background()
	raw, err := c.db.Get(ctx, topScoresKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	var entries []ScoreEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *RedisScoreCache) SetTop(entries []ScoreEntry) {
	ctx := context.Background()
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.db.Set(ctx, topScoresKey, data, topScoresTTL)
}

func (c *RedisScoreCache) Invalidate() {
	ctx := context.Background()
	c.db.Del(ctx, topScoresKey)
}
