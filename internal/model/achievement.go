package model

import "time"

// Achievement threshold kinds evaluated after each recorded catch.
const (
    ThresholdTotalCatches = "TOTAL_CATCHES"
    ThresholdTotalWeight  = "TOTAL_WEIGHT_GRAMS"
    ThresholdBiggestCatch = "BIGGEST_GRAMS"
)

// Achievement is a row in the externally administered rule table.
// Thresholds are compared against the user's aggregated stats; the
// core only evaluates and unlocks, it never edits the rules.
//
// Fields:
//  ID             – primary key identifier.
//  Code           – stable machine-readable code.
//  Name           – display name.
//  ThresholdType  – which stat the threshold applies to.
//  ThresholdValue – value the stat must reach.
type Achievement struct {
    ID             uint64 // achievements.id
    Code           string // achievements.code
    Name           string // achievements.name
    ThresholdType  string // achievements.threshold_type
    ThresholdValue uint64 // achievements.threshold_value
}

// UserAchievement marks an achievement as unlocked for a user.  The
// (user, achievement) pair is unique so re-evaluation after later
// catches cannot double-unlock.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who unlocked the achievement.
//  AchievementID – achievement that was unlocked.
//  UnlockedAt    – unlock timestamp.
type UserAchievement struct {
    ID            uint64    // user_achievements.id
    UserID        uint64    // user_achievements.user_id
    AchievementID uint64    // user_achievements.achievement_id
    UnlockedAt    time.Time // user_achievements.unlocked_at
}

// UserStats is the running aggregate maintained after each catch.
// It exists to make achievement evaluation cheap; leaderboards are
// always recomputed from catch_records and never read this table.
//
// Fields:
//  UserID           – user the stats belong to.
//  TotalCatches     – number of recorded catches.
//  TotalWeightGrams – sum of catch weights.
//  BiggestGrams     – heaviest single catch.
//  LastCatchAt      – timestamp of the most recent catch (nullable).
type UserStats struct {
    UserID           uint64     // user_stats.user_id
    TotalCatches     uint64     // user_stats.total_catches
    TotalWeightGrams uint64     // user_stats.total_weight_grams
    BiggestGrams     uint32     // user_stats.biggest_grams
    LastCatchAt      *time.Time // user_stats.last_catch_at (nullable)
}
