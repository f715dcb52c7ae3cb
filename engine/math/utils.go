package math

import "golang.org/x/exp/constraints"

const (
	/** @brief The multiplier to convert seconds to milliseconds. */
	K_SEC_TO_MS_MULTIPLIER float64 = 1000.0
	/** @brief The multiplier to convert milliseconds to seconds. */
	K_MS_TO_SEC_MULTIPLIER float64 = 0.001
)

// Clamp limits v to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	return max(low, min(v, high))
}

// FrameBudget returns the milliseconds between two ticks at the given rate.
// A non-positive rate has no budget.
func FrameBudget[T constraints.Integer | constraints.Float](rate T) float64 {
	if rate <= 0 {
		return 0
	}
	return K_SEC_TO_MS_MULTIPLIER / float64(rate)
}
