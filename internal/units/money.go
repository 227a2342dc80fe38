package units

import (
	"fmt"
	"math"
)

// Money is an amount in euros. No rounding is applied; that belongs to the presentation layer.
type Money float64

func (m Money) Value() float64 { return float64(m) }

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

func (m Money) Mul(f float64) Money { return Money(float64(m) * f) }

func (m Money) Div(f float64) Money { return Money(float64(m) / f) }

func (m Money) Neg() Money { return -m }

func (m Money) Abs() Money { return Money(math.Abs(float64(m))) }

func (m Money) Min(o Money) Money {
	if o < m {
		return o
	}
	return m
}

func (m Money) Max(o Money) Money {
	if o > m {
		return o
	}
	return m
}

// PositiveDifference returns max(a-b, 0).
func PositiveDifference(a, b Money) Money {
	if a > b {
		return a - b
	}
	return 0
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f€", float64(m))
}
