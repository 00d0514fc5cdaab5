// Package queue defines message payloads exchanged over the message broker.
package queue

// Notification kinds carried on the pond.notifications queue.
const (
    KindCheckInWelcome      = "checkin.welcome"
    KindCatchRecorded       = "catch.recorded"
    KindAchievementUnlocked = "achievement.unlocked"
)

// Notification is the envelope published for every best-effort side
// effect.  Exactly one of the payload pointers is set, matching Kind.
// Delivery is fire-and-forget: core transactions commit whether or
// not the broker accepts the message.
type Notification struct {
    Kind        string                    `json:"kind"`
    CheckIn     *CheckInWelcomeEvent      `json:"check_in,omitempty"`
    Catch       *CatchRecordedEvent       `json:"catch,omitempty"`
    Achievement *AchievementUnlockedEvent `json:"achievement,omitempty"`
}

// CheckInWelcomeEvent is published after a fresh check-in commits.
// It contains enough information for downstream consumers to greet
// the angler without querying the primary database.
type CheckInWelcomeEvent struct {
    SeatID      uint64 `json:"seat_id"`
    SeatNo      uint32 `json:"seat_no"`
    BookingRef  string `json:"booking_ref"`
    UserID      uint64 `json:"user_id"`
    UserName    string `json:"user_name"`
    UserEmail   string `json:"user_email"`
    StationID   string `json:"station_id"`
    CheckedInAt string `json:"checked_in_at"`
}

// CatchRecordedEvent is published after a catch record commits.
type CatchRecordedEvent struct {
    CatchID     uint64  `json:"catch_id"`
    UserID      uint64  `json:"user_id"`
    EventID     *uint64 `json:"event_id,omitempty"`
    GameID      *uint64 `json:"game_id,omitempty"`
    WeightGrams uint32  `json:"weight_grams"`
    CurrentRank *uint32 `json:"current_rank,omitempty"`
    CaughtAt    string  `json:"caught_at"`
}

// AchievementUnlockedEvent is published once per newly unlocked
// achievement; the unique unlock key upstream guarantees the same
// achievement is never announced twice for one user.
type AchievementUnlockedEvent struct {
    UserID          uint64 `json:"user_id"`
    AchievementCode string `json:"achievement_code"`
    AchievementName string `json:"achievement_name"`
    UnlockedAt      string `json:"unlocked_at"`
}
