package qr

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewSeatQRFormat(t *testing.T) {
    code, err := NewSeatQR(42, 3)
    require.NoError(t, err)
    assert.True(t, strings.HasPrefix(code, "PB-42-S3-"))

    parts := strings.Split(code, "-")
    require.Len(t, parts, 4)
    assert.Len(t, parts[3], 2*suffixBytes)
}

func TestNewRodQRUsesConfiguredPrefix(t *testing.T) {
    code, err := NewRodQR("FR-", 42, 3)
    require.NoError(t, err)
    assert.True(t, strings.HasPrefix(code, "FR-42-S3-"))

    code, err = NewRodQR("", 7, 1)
    require.NoError(t, err)
    assert.True(t, strings.HasPrefix(code, "ROD-7-S1-"))
}

func TestRouteDiscriminatesByPrefix(t *testing.T) {
    assert.Equal(t, KindSeat, Route("PB-42-S3-a1b2c3d4e5f6", "ROD-"))
    assert.Equal(t, KindRod, Route("ROD-42-S3-a1b2c3d4e5f6", "ROD-"))

    // Custom rod prefix moves the boundary; default applies when the
    // configured prefix is empty.
    assert.Equal(t, KindRod, Route("FR-42-S3-a1b2c3d4e5f6", "FR-"))
    assert.Equal(t, KindSeat, Route("ROD-42-S3-a1b2c3d4e5f6", "FR-"))
    assert.Equal(t, KindRod, Route("ROD-42-S3-a1b2c3d4e5f6", ""))
}

func TestSuffixesDoNotRepeat(t *testing.T) {
    seen := make(map[string]struct{})
    for i := 0; i < 1000; i++ {
        code, err := NewSeatQR(1, 1)
        require.NoError(t, err)
        _, dup := seen[code]
        require.False(t, dup, "duplicate code %s", code)
        seen[code] = struct{}{}
    }
}
