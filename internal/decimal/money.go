package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates decimal from float without rounding.
// Feature hours and prices are stored as float64 and summed exactly here.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Mul multiplies two decimals, rounds to 2 places
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// RoundWhole rounds to a whole unit, half away from zero
func RoundWhole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// ToFloat converts back to float64 for storage on the model
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// CeilDiv returns ceil(a/b) for positive b; zero when b is not positive
func CeilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
