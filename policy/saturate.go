package policy

import (
	"math"
	"math/bits"
)

// AddCost adds two amounts, saturating at math.MaxInt64 and math.MinInt64.
func AddCost(a, b int64) int64 {
	sum := a + b
	switch {
	case a > 0 && b > 0 && sum < 0:
		return math.MaxInt64
	case a < 0 && b < 0 && sum >= 0:
		return math.MinInt64
	}
	return sum
}

// mulCost multiplies unsigned factors, saturating at math.MaxInt64.
func mulCost(factors ...uint64) int64 {
	product := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(product, f)
		if hi != 0 {
			return math.MaxInt64
		}
		product = lo
	}
	return toCost(product)
}

func toCost(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
