package config

import "time"

// LeaderboardCacheConfig tunes the TTL cache wrapped around the
// leaderboard generator.  The cache is an optimization only: when
// disabled, when Redis is unreachable or when an entry is older than
// TTL, rankings are recomputed from catch records.
type LeaderboardCacheConfig struct {
    Enabled bool          // disable to force recomputation on every request
    TTL     time.Duration // maximum age before a cached board is stale
    Prefix  string        // redis key namespace
}

// LoadLeaderboardCacheConfig reads environment variables to build a
// LeaderboardCacheConfig.  The 60 second default TTL bounds how long
// a displayed ranking may trail the latest weigh-ins.
func LoadLeaderboardCacheConfig() LeaderboardCacheConfig {
    cfg := LeaderboardCacheConfig{
        Enabled: envBool("LEADERBOARD_CACHE_ENABLED", true),
        TTL:     envDur("LEADERBOARD_CACHE_TTL", 60*time.Second),
        Prefix:  envStr("LEADERBOARD_CACHE_PREFIX", "lb"),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = 60 * time.Second
    }
    return cfg
}
