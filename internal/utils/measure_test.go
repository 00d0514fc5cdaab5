package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestWeightToGramsRounds(t *testing.T) {
    assert.Equal(t, uint32(2450), WeightToGrams(2.45))
    assert.Equal(t, uint32(2451), WeightToGrams(2.4505))
    assert.Equal(t, uint32(1000), WeightToGrams(0.9999))
    assert.Equal(t, uint32(999), WeightToGrams(0.9994))
}

func TestLengthToMMRounds(t *testing.T) {
    assert.Equal(t, uint32(455), LengthToMM(45.5))
    assert.Equal(t, uint32(456), LengthToMM(45.55))
    assert.Equal(t, uint32(1), LengthToMM(0.1))
}

func TestStoredValuesRoundTrip(t *testing.T) {
    // A value stored in minor units must present back as the same
    // number the scale reported.
    for _, kg := range []float64{0.001, 1.5, 2.45, 12.345} {
        assert.InDelta(t, kg, GramsToKg(WeightToGrams(kg)), 0.0005)
    }
    for _, cm := range []float64{0.1, 45.5, 120.9} {
        assert.InDelta(t, cm, MMToCm(LengthToMM(cm)), 0.05)
    }
}
