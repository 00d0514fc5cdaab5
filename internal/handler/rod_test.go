package handler

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

func TestNextRodIssuanceFirstPrint(t *testing.T) {
    plan := nextRodIssuance(nil, 0)
    assert.Equal(t, uint32(1), plan.Version)
    assert.Nil(t, plan.PreviousQR)
    assert.False(t, plan.VoidActive)
}

func TestNextRodIssuanceAfterAllVoided(t *testing.T) {
    // Every prior rod was voided (lost, not replaced); the next one
    // continues the chain instead of restarting at 1.
    plan := nextRodIssuance(nil, 3)
    assert.Equal(t, uint32(4), plan.Version)
    assert.Nil(t, plan.PreviousQR)
    assert.False(t, plan.VoidActive)
}

func TestNextRodIssuanceReplacementChains(t *testing.T) {
    active := &model.FishingRod{Version: 2, QRCode: "ROD-9-S1-a1b2c3d4e5f6", Status: model.RodActive}
    plan := nextRodIssuance(active, 0)
    assert.Equal(t, uint32(3), plan.Version)
    assert.True(t, plan.VoidActive)
    require.NotNil(t, plan.PreviousQR)
    assert.Equal(t, "ROD-9-S1-a1b2c3d4e5f6", *plan.PreviousQR)
}

func TestNextRodIssuanceVersionsStayMonotonic(t *testing.T) {
    // Two replacements in a row: each rod supersedes the previous
    // one and versions only ever grow.
    first := &model.FishingRod{Version: 1, QRCode: "ROD-5-S2-aaaaaaaaaaaa", Status: model.RodActive}
    second := nextRodIssuance(first, 0)
    require.NotNil(t, second.PreviousQR)
    assert.Equal(t, first.QRCode, *second.PreviousQR)

    replacement := &model.FishingRod{Version: second.Version, QRCode: "ROD-5-S2-bbbbbbbbbbbb", Status: model.RodActive}
    third := nextRodIssuance(replacement, 0)
    assert.Equal(t, uint32(3), third.Version)
    require.NotNil(t, third.PreviousQR)
    assert.Equal(t, replacement.QRCode, *third.PreviousQR)
    assert.Greater(t, third.Version, second.Version)
}
