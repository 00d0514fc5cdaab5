package utils // utils holds small helpers shared across handlers and repositories

import "math"

// Measurements are stored as integer minor units: catch weight in
// grams (three decimals of a kilogram) and length in millimetres
// (one decimal of a centimetre).  Inputs arrive as floating point
// from the weighing station and are normalized exactly once here so
// that a stored value re-read from the database round-trips to the
// same number.

// WeightToGrams normalizes a weight in kilograms to whole grams,
// rounding half away from zero.  Callers must reject non-positive
// weights before conversion.
func WeightToGrams(kg float64) uint32 {
    return uint32(math.Round(kg * 1000))
}

// GramsToKg converts a stored gram value back to kilograms for
// presentation.  The result always carries at most three decimals.
func GramsToKg(grams uint32) float64 {
    return float64(grams) / 1000
}

// LengthToMM normalizes a length in centimetres to whole
// millimetres, rounding half away from zero.
func LengthToMM(cm float64) uint32 {
    return uint32(math.Round(cm * 10))
}

// MMToCm converts a stored millimetre value back to centimetres.
func MMToCm(mm uint32) float64 {
    return float64(mm) / 10
}
