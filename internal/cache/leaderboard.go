// Package cache wraps the pure leaderboard generator with a
// TTL-bounded Redis cache.  The cache is purely an optimization:
// correctness never depends on an entry being present or fresh, and
// a nil Redis client (broker unreachable at startup) degrades to
// recomputing every board from catch records.  Refresh is
// last-writer-wins; bounded staleness is acceptable here in a way it
// is not for seat or rod state.
package cache

import (
    "context"
    "encoding/json"
    "fmt"

    "github.com/redis/go-redis/v9"

    "github.com/measaura/netlify-pond-booking-sub001/internal/config"
    "github.com/measaura/netlify-pond-booking-sub001/internal/leaderboard"
)

// LeaderboardCache caches generated boards under namespaced keys.
type LeaderboardCache struct {
    cfg config.LeaderboardCacheConfig
    rdb *redis.Client
}

// NewLeaderboardCache builds a cache over the given client.  A nil
// client or a disabled config yields a cache whose Get always misses.
func NewLeaderboardCache(cfg config.LeaderboardCacheConfig, rdb *redis.Client) *LeaderboardCache {
    return &LeaderboardCache{cfg: cfg, rdb: rdb}
}

func (c *LeaderboardCache) enabled() bool {
    return c != nil && c.cfg.Enabled && c.rdb != nil
}

// OverallKey is the cache key for the system-wide board.
func (c *LeaderboardCache) OverallKey() string {
    return c.cfg.Prefix + ":overall"
}

// EventKey is the cache key for an event board, optionally scoped to
// one game.
func (c *LeaderboardCache) EventKey(eventID uint64, gameID *uint64) string {
    if gameID != nil {
        return fmt.Sprintf("%s:event:%d:game:%d", c.cfg.Prefix, eventID, *gameID)
    }
    return fmt.Sprintf("%s:event:%d", c.cfg.Prefix, eventID)
}

// Get returns the cached board for key, or nil on miss, expiry,
// decode failure or disabled cache.  Decode failures are treated as
// misses so a stale payload from an older build can never wedge the
// endpoint.
func (c *LeaderboardCache) Get(ctx context.Context, key string) *leaderboard.Board {
    if !c.enabled() {
        return nil
    }
    raw, err := c.rdb.Get(ctx, key).Bytes()
    if err != nil {
        return nil
    }
    var board leaderboard.Board
    if err := json.Unmarshal(raw, &board); err != nil {
        return nil
    }
    return &board
}

// Set stores a freshly generated board with the configured TTL.
// Errors are swallowed: a failed cache write only costs the next
// request a recomputation.
func (c *LeaderboardCache) Set(ctx context.Context, key string, board *leaderboard.Board) {
    if !c.enabled() || board == nil {
        return
    }
    raw, err := json.Marshal(board)
    if err != nil {
        return
    }
    _ = c.rdb.SetEx(ctx, key, raw, c.cfg.TTL).Err()
}

// Invalidate drops a cached board so the next read recomputes.  Used
// after weigh-ins that should surface immediately on the event board.
func (c *LeaderboardCache) Invalidate(ctx context.Context, keys ...string) {
    if !c.enabled() || len(keys) == 0 {
        return
    }
    _ = c.rdb.Del(ctx, keys...).Err()
}
