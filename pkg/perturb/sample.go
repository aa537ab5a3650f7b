package perturb

import (
	"math"
	"math/rand/v2"
)

// SampleSize returns floor(n*ratio) clamped to [0, n].
func SampleSize(n int, ratio float64) int {
	if n <= 0 || !(ratio > 0) {
		return 0
	}
	k := math.Floor(float64(n) * ratio)
	if k >= float64(n) {
		return n
	}
	return int(k)
}

// Sample draws k distinct items uniformly at random without replacement.
// The result order is random; items is not modified. k is clamped to
// [0, len(items)].
func Sample[T any](rng *rand.Rand, items []T, k int) []T {
	k = max(0, min(k, len(items)))
	if k == 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
