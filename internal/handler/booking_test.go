package handler

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
)

func TestCheckCapacityAllOrNothing(t *testing.T) {
    assert.NoError(t, checkCapacity(50, 45, 5))
    assert.ErrorIs(t, checkCapacity(50, 45, 6), repository.ErrCapacityExceeded)

    // A request larger than the remainder is rejected whole; no
    // partial allocation.
    assert.ErrorIs(t, checkCapacity(50, 49, 3), repository.ErrCapacityExceeded)
    assert.NoError(t, checkCapacity(50, 0, 50))
}

func TestCheckShareable(t *testing.T) {
    assert.NoError(t, checkShareable(model.SeatUnassigned))
    assert.NoError(t, checkShareable(model.SeatShared))
    assert.NoError(t, checkShareable(model.SeatCheckedOut))
    assert.ErrorIs(t, checkShareable(model.SeatCheckedIn), repository.ErrSeatAlreadyCheckedIn)
}
