package handler

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

var testRules = []model.Achievement{
    {ID: 1, Code: "FIRST_CATCH", ThresholdType: model.ThresholdTotalCatches, ThresholdValue: 1},
    {ID: 2, Code: "TEN_CATCHES", ThresholdType: model.ThresholdTotalCatches, ThresholdValue: 10},
    {ID: 3, Code: "HEAVY_BAG", ThresholdType: model.ThresholdTotalWeight, ThresholdValue: 25000},
    {ID: 4, Code: "TROPHY_FISH", ThresholdType: model.ThresholdBiggestCatch, ThresholdValue: 5000},
}

func TestAchievementsMetAgainstThresholds(t *testing.T) {
    stats := &model.UserStats{TotalCatches: 1, TotalWeightGrams: 1800, BiggestGrams: 1800}
    met := achievementsMet(stats, testRules)
    require.Len(t, met, 1)
    assert.Equal(t, "FIRST_CATCH", met[0].Code)
}

func TestAchievementsMetAtExactThreshold(t *testing.T) {
    stats := &model.UserStats{TotalCatches: 10, TotalWeightGrams: 25000, BiggestGrams: 5000}
    met := achievementsMet(stats, testRules)
    require.Len(t, met, 4)
}

func TestAchievementsMetIgnoresUnknownThresholdType(t *testing.T) {
    rules := append(testRules, model.Achievement{
        ID: 5, Code: "FUTURE_RULE", ThresholdType: "LONGEST_MM", ThresholdValue: 1,
    })
    stats := &model.UserStats{TotalCatches: 1, TotalWeightGrams: 500, BiggestGrams: 500}
    met := achievementsMet(stats, rules)
    require.Len(t, met, 1)
    assert.Equal(t, "FIRST_CATCH", met[0].Code)
}

func TestAchievementsMetWithNoCatches(t *testing.T) {
    stats := &model.UserStats{UserID: 9}
    assert.Empty(t, achievementsMet(stats, testRules))
}

func TestCheckMeasurementsAcceptsPlausibleReading(t *testing.T) {
    length := 38.5
    assert.NoError(t, checkMeasurements(2.45, &length))
    assert.NoError(t, checkMeasurements(2.45, nil))
}

func TestCheckMeasurementsRejectsNonPositive(t *testing.T) {
    assert.Error(t, checkMeasurements(0, nil))
    assert.Error(t, checkMeasurements(-1.2, nil))
    length := -5.0
    assert.Error(t, checkMeasurements(2.45, &length))
}

func TestCheckMeasurementsRejectsGlitchedScale(t *testing.T) {
    // A reading past the uint32 gram range would convert to garbage;
    // it must be refused before normalization.
    assert.Error(t, checkMeasurements(5e9, nil))
    assert.Error(t, checkMeasurements(maxWeightKg+1, nil))
    length := float64(maxLengthCm + 1)
    assert.Error(t, checkMeasurements(2.45, &length))
}
