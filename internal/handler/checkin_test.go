package handler

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
)

func TestCheckDayAcceptsBookingDay(t *testing.T) {
    day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

    assert.NoError(t, checkDay(day, time.Date(2025, 6, 14, 0, 0, 1, 0, time.UTC)))
    assert.NoError(t, checkDay(day, time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)))
}

func TestCheckDayRejectsEarlyScan(t *testing.T) {
    day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
    err := checkDay(day, time.Date(2025, 6, 13, 23, 59, 59, 0, time.UTC))
    assert.ErrorIs(t, err, repository.ErrWrongDay)
}

func TestCheckDayRejectsLateScan(t *testing.T) {
    day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
    err := checkDay(day, time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC))
    assert.ErrorIs(t, err, repository.ErrEventPassed)
}

func TestAlreadyCheckedInViewShape(t *testing.T) {
    at := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
    scan := &repository.ScanContext{BookingRef: "BK-1A2B3C4D"}
    scan.Seat.ID = 7
    scan.Seat.SeatNo = 2

    view := alreadyCheckedInView(scan, at)
    assert.Equal(t, "already_checked_in", view["result"])
    assert.Equal(t, "2025-06-14T09:30:00Z", view["original_checkin_time"])
    assert.Equal(t, uint64(7), view["seat_id"])
    assert.Equal(t, uint32(2), view["seat_no"])
    assert.Equal(t, "BK-1A2B3C4D", view["booking_ref"])
    assert.NotContains(t, view, "user_id")

    uid := uint64(42)
    name := "Lena Ortiz"
    scan.Seat.AssignedTo = &uid
    scan.AssignedName = &name
    view = alreadyCheckedInView(scan, at)
    assert.Equal(t, uint64(42), view["user_id"])
    assert.Equal(t, "Lena Ortiz", view["user_name"])
}

func TestCheckDayComparesInUTC(t *testing.T) {
    day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
    // 23:00 local on the 13th in UTC+2 is 21:00 UTC on the 13th,
    // still the day before.
    local := time.Date(2025, 6, 13, 23, 0, 0, 0, time.FixedZone("CEST", 2*3600))
    assert.ErrorIs(t, checkDay(day, local), repository.ErrWrongDay)

    // 01:00 local on the 14th in UTC+2 is still the 13th in UTC.
    local = time.Date(2025, 6, 14, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600))
    assert.ErrorIs(t, checkDay(day, local), repository.ErrWrongDay)
}
