// Package leaderboard turns flat catch rows into ranked standings.
// The whole package is a pure function over its inputs: it reads no
// clocks, touches no storage and keeps no state, so a fixed set of
// rows always produces the same ordering and rank assignment.  The
// TTL cache in internal/cache wraps these functions without changing
// their results.
package leaderboard

import (
    "sort"
    "time"
)

// CatchRow is the minimal projection of a catch record the ranking
// functions consume.
type CatchRow struct {
    UserID      uint64
    EventID     *uint64
    GameID      *uint64
    WeightGrams uint32
    CaughtAt    time.Time
}

// Entry is one ranked line of a leaderboard.  Name is filled in by
// the handler from the user directory; everything else derives from
// catch rows alone.
type Entry struct {
    Rank             uint32  `json:"rank"`
    UserID           uint64  `json:"user_id"`
    Name             string  `json:"name,omitempty"`
    TotalWeightGrams uint64  `json:"total_weight_grams"`
    FishCount        uint64  `json:"fish_count"`
    BiggestGrams     uint32  `json:"biggest_grams"`
    AverageGrams     uint32  `json:"average_grams"`
    EventsPlayed     uint32  `json:"events_played"`
    EventsWon        uint32  `json:"events_won"`
    Points           uint32  `json:"points"`

    earliest time.Time // earliest qualifying catch, final tie-break
}

// pointsScale maps rank to the fixed descending points award.  Ranks
// past the table earn a single participation point.  The exact
// mapping is a configuration concern, not a correctness invariant.
var pointsScale = []uint32{25, 20, 16, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

// PointsForRank returns the points awarded for a dense rank.
func PointsForRank(rank uint32) uint32 {
    if rank == 0 {
        return 0
    }
    if int(rank) <= len(pointsScale) {
        return pointsScale[rank-1]
    }
    return 1
}

// aggregate folds rows into one unranked Entry per user.
func aggregate(rows []CatchRow) map[uint64]*Entry {
    entries := make(map[uint64]*Entry)
    events := make(map[uint64]map[uint64]struct{}) // user -> distinct event IDs
    for _, row := range rows {
        e, ok := entries[row.UserID]
        if !ok {
            e = &Entry{UserID: row.UserID, earliest: row.CaughtAt}
            entries[row.UserID] = e
        }
        e.TotalWeightGrams += uint64(row.WeightGrams)
        e.FishCount++
        if row.WeightGrams > e.BiggestGrams {
            e.BiggestGrams = row.WeightGrams
        }
        if row.CaughtAt.Before(e.earliest) {
            e.earliest = row.CaughtAt
        }
        if row.EventID != nil {
            evs, ok := events[row.UserID]
            if !ok {
                evs = make(map[uint64]struct{})
                events[row.UserID] = evs
            }
            evs[*row.EventID] = struct{}{}
        }
    }
    for uid, e := range entries {
        if e.FishCount > 0 {
            e.AverageGrams = uint32(e.TotalWeightGrams / e.FishCount)
        }
        e.EventsPlayed = uint32(len(events[uid]))
    }
    return entries
}

// eventWinners returns the set of (event, user) pairs where the user
// holds rank 1 of that event's standings, computed by ranking each
// event's rows in isolation.  Co-leaders with exactly equal totals
// and biggest catches all count as winners.
func eventWinners(rows []CatchRow) map[uint64]map[uint64]struct{} {
    perEvent := make(map[uint64][]CatchRow)
    for _, row := range rows {
        if row.EventID == nil {
            continue
        }
        perEvent[*row.EventID] = append(perEvent[*row.EventID], row)
    }
    winners := make(map[uint64]map[uint64]struct{})
    for eventID, eventRows := range perEvent {
        ranked := rank(aggregate(eventRows))
        for _, e := range ranked {
            if e.Rank != 1 {
                break
            }
            if winners[eventID] == nil {
                winners[eventID] = make(map[uint64]struct{})
            }
            winners[eventID][e.UserID] = struct{}{}
        }
    }
    return winners
}

// rank orders entries by total weight descending, ties broken by
// biggest single catch descending, then by earliest qualifying
// catch, and assigns dense ranks: 1, 2, 3 with no gaps, a rank shared
// only when total weight and biggest catch are exactly equal.
func rank(entries map[uint64]*Entry) []Entry {
    out := make([]Entry, 0, len(entries))
    for _, e := range entries {
        out = append(out, *e)
    }
    sort.Slice(out, func(i, j int) bool {
        a, b := out[i], out[j]
        if a.TotalWeightGrams != b.TotalWeightGrams {
            return a.TotalWeightGrams > b.TotalWeightGrams
        }
        if a.BiggestGrams != b.BiggestGrams {
            return a.BiggestGrams > b.BiggestGrams
        }
        if !a.earliest.Equal(b.earliest) {
            return a.earliest.Before(b.earliest)
        }
        return a.UserID < b.UserID // stable order for identical keys
    })
    var current uint32
    for i := range out {
        if i == 0 || out[i].TotalWeightGrams != out[i-1].TotalWeightGrams || out[i].BiggestGrams != out[i-1].BiggestGrams {
            current++
        }
        out[i].Rank = current
        out[i].Points = PointsForRank(current)
    }
    return out
}

// Overall computes the system-wide leaderboard from every catch row.
func Overall(rows []CatchRow) []Entry {
    entries := aggregate(rows)
    winners := eventWinners(rows)
    for _, users := range winners {
        for uid := range users {
            if e, ok := entries[uid]; ok {
                e.EventsWon++
            }
        }
    }
    return rank(entries)
}

// ForEvent computes standings from rows already scoped to one event
// (and optionally one game).  The caller filters; the math is
// identical to Overall minus the cross-event win counting.
func ForEvent(rows []CatchRow) []Entry {
    return rank(aggregate(rows))
}

// Board is a generated leaderboard plus the metadata the cache layer
// stores alongside it.  Safe to drop and regenerate at any time.
type Board struct {
    Scope       string  `json:"scope"` // "overall" or "event"
    EventID     *uint64 `json:"event_id,omitempty"`
    GameID      *uint64 `json:"game_id,omitempty"`
    GeneratedAt string  `json:"generated_at"`
    Entries     []Entry `json:"entries"`
}
