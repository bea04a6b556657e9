package stats

import "math"

// Mean returns the arithmetic mean of the samples, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanInt returns the mean of integer samples as a float64.
func MeanInt(values []int) float64 {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return Mean(fs)
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PctShare returns part/total as a percentage rounded to one decimal.
// A zero total yields 0.
func PctShare(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(part) / float64(total) * 100)
}

// PctChange returns the percentage change from previous to current,
// rounded to one decimal. The second return is false when the change is
// undefined (no previous and no current volume). A previous of zero with
// current volume counts as +100%.
func PctChange(current, previous int) (float64, bool) {
	if previous > 0 {
		return Round1(float64(current-previous) / float64(previous) * 100), true
	}
	if current > 0 {
		return 100, true
	}
	return 0, false
}
