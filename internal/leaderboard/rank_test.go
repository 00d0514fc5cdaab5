package leaderboard

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 { return &v }

func row(user uint64, grams uint32, at time.Time, eventID *uint64) CatchRow {
    return CatchRow{UserID: user, WeightGrams: grams, CaughtAt: at, EventID: eventID}
}

var t0 = time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)

func TestOverallOrdersByTotalWeight(t *testing.T) {
    rows := []CatchRow{
        row(1, 1500, t0, nil),
        row(2, 3200, t0.Add(time.Minute), nil),
        row(1, 1000, t0.Add(2*time.Minute), nil),
        row(3, 4000, t0.Add(3*time.Minute), nil),
    }
    entries := Overall(rows)
    require.Len(t, entries, 3)
    assert.Equal(t, uint64(3), entries[0].UserID)
    assert.Equal(t, uint64(2), entries[1].UserID)
    assert.Equal(t, uint64(1), entries[2].UserID)
    for i, e := range entries {
        assert.Equal(t, uint32(i+1), e.Rank)
    }
    assert.Equal(t, uint64(2500), entries[2].TotalWeightGrams)
    assert.Equal(t, uint64(2), entries[2].FishCount)
    assert.Equal(t, uint32(1500), entries[2].BiggestGrams)
    assert.Equal(t, uint32(1250), entries[2].AverageGrams)
}

func TestOverallTieBrokenByBiggestCatch(t *testing.T) {
    // Both users total 3000g; user 2's single 3000g catch beats
    // user 1's pair of 1500g catches.
    rows := []CatchRow{
        row(1, 1500, t0, nil),
        row(1, 1500, t0.Add(time.Minute), nil),
        row(2, 3000, t0.Add(2*time.Minute), nil),
    }
    entries := Overall(rows)
    require.Len(t, entries, 2)
    assert.Equal(t, uint64(2), entries[0].UserID)
    assert.Equal(t, uint32(1), entries[0].Rank)
    assert.Equal(t, uint32(2), entries[1].Rank)
}

func TestOverallExactTieSharesDenseRank(t *testing.T) {
    // Users 1 and 2 have identical totals and biggest catches, so
    // they share rank 1; user 3 takes rank 2 with no gap.
    rows := []CatchRow{
        row(1, 2000, t0, nil),
        row(2, 2000, t0.Add(time.Minute), nil),
        row(3, 500, t0.Add(2*time.Minute), nil),
    }
    entries := Overall(rows)
    require.Len(t, entries, 3)
    assert.Equal(t, uint32(1), entries[0].Rank)
    assert.Equal(t, uint32(1), entries[1].Rank)
    assert.Equal(t, uint32(2), entries[2].Rank)
    // Earliest catch orders the co-leaders without splitting the rank.
    assert.Equal(t, uint64(1), entries[0].UserID)
    assert.Equal(t, uint64(2), entries[1].UserID)
    assert.Equal(t, entries[0].Points, entries[1].Points)
}

func TestOverallIsDeterministic(t *testing.T) {
    rows := []CatchRow{
        row(5, 900, t0, u64(1)),
        row(4, 900, t0.Add(time.Second), u64(1)),
        row(3, 1200, t0.Add(2*time.Second), u64(2)),
        row(5, 300, t0.Add(3*time.Second), u64(2)),
    }
    first := Overall(rows)
    // Reverse the input order; aggregation must not care.
    reversed := make([]CatchRow, 0, len(rows))
    for i := len(rows) - 1; i >= 0; i-- {
        reversed = append(reversed, rows[i])
    }
    second := Overall(reversed)
    require.Equal(t, first, second)
}

func TestOverallCountsEventsPlayedAndWon(t *testing.T) {
    rows := []CatchRow{
        // Event 1: user 1 wins with 2000g over user 2's 1000g.
        row(1, 2000, t0, u64(1)),
        row(2, 1000, t0.Add(time.Minute), u64(1)),
        // Event 2: user 2 wins with 5000g.
        row(2, 5000, t0.Add(2*time.Minute), u64(2)),
        row(1, 100, t0.Add(3*time.Minute), u64(2)),
        // Pond catch outside any event counts for totals only.
        row(1, 400, t0.Add(4*time.Minute), nil),
    }
    entries := Overall(rows)
    byUser := make(map[uint64]Entry)
    for _, e := range entries {
        byUser[e.UserID] = e
    }
    assert.Equal(t, uint32(2), byUser[1].EventsPlayed)
    assert.Equal(t, uint32(1), byUser[1].EventsWon)
    assert.Equal(t, uint32(2), byUser[2].EventsPlayed)
    assert.Equal(t, uint32(1), byUser[2].EventsWon)
}

func TestForEventScopedStandings(t *testing.T) {
    rows := []CatchRow{
        row(1, 800, t0, u64(7)),
        row(2, 1200, t0.Add(time.Minute), u64(7)),
        row(1, 900, t0.Add(2*time.Minute), u64(7)),
    }
    entries := ForEvent(rows)
    require.Len(t, entries, 2)
    assert.Equal(t, uint64(1), entries[0].UserID) // 1700g total
    assert.Equal(t, uint64(2), entries[1].UserID)
}

func TestPointsForRank(t *testing.T) {
    assert.Equal(t, uint32(25), PointsForRank(1))
    assert.Equal(t, uint32(20), PointsForRank(2))
    assert.Equal(t, uint32(1), PointsForRank(15))
    assert.Equal(t, uint32(1), PointsForRank(99))
    assert.Equal(t, uint32(0), PointsForRank(0))
    for r := uint32(1); r < 30; r++ {
        assert.GreaterOrEqual(t, PointsForRank(r), PointsForRank(r+1), "points must not increase with rank")
    }
}
