package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRejectsUnknownPaymentCounts(t *testing.T) {
	for _, n := range []int{11, 12, 14} {
		p, err := Monthly(n)
		require.NoError(t, err)
		assert.Equal(t, n, p.Payments())
	}
	for _, n := range []int{0, 1, 13, 15} {
		_, err := Monthly(n)
		assert.ErrorIs(t, err, ErrInvalidPayments, "payments=%d", n)
	}
}

func TestRatioToYearly(t *testing.T) {
	tests := []struct {
		period Period
		want   float64
	}{
		{Yearly, 1},
		{Period{}, 1},
		{M11, 11},
		{M12, 12},
		{M14, 14},
		{Workdaily(0), 242},
		{Workdaily(251), 251},
		{Hourly(40), 2080},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.period.RatioToYearly(), tt.period.String())
	}
}

func TestAsYearlyIsIdempotent(t *testing.T) {
	for _, p := range []Period{Yearly, M11, M12, M14, Workdaily(0), Hourly(37.5)} {
		q := NewQuantity(1234.56, p)
		once := q.AsYearly()
		assert.Equal(t, once, once.AsYearly(), p.String())
		assert.True(t, once.Period().IsYearly())
	}
}

func TestChangePeriodRoundTrip(t *testing.T) {
	for _, p := range []Period{M11, M12, M14, Workdaily(0), Hourly(40)} {
		q := NewQuantity(987.65, p)
		y := q.AsYearly()
		y.ChangePeriod(p)
		assert.Equal(t, p, y.Period())
		assert.InDelta(t, 987.65, y.Value().Value(), 1e-9, p.String())
	}
}

func TestInRescalesBetweenMonthlyVariants(t *testing.T) {
	q := NewQuantity(1200, M12)
	got := q.In(M14)
	assert.Equal(t, M14, got.Period())
	assert.InDelta(t, 1200*12/14.0, got.Value().Value(), 1e-9)
	assert.Equal(t, M12, q.Period(), "In must not modify the receiver")
}

func TestSamePeriodArithmeticKeepsPeriod(t *testing.T) {
	a := NewQuantity(100, M14)
	b := NewQuantity(50, M14)
	assert.Equal(t, NewQuantity(150, M14), a.Add(b))
	assert.Equal(t, NewQuantity(50, M14), a.Sub(b))
	assert.Equal(t, NewQuantity(200, M14), a.Mul(2))
	assert.Equal(t, NewQuantity(25, M14), a.Div(4))
	assert.Equal(t, NewQuantity(-100, M14), a.Neg())
}

func TestMixedPeriodArithmeticNormalizesToYearly(t *testing.T) {
	monthly := NewQuantity(100, M14)
	yearly := PerYear(100)

	sum := monthly.Add(yearly)
	assert.Equal(t, PerYear(1500), sum)

	diff := monthly.Sub(NewQuantity(100, M12))
	assert.Equal(t, PerYear(200), diff)
}

func TestComparisonUsesYearlyValues(t *testing.T) {
	// 100 paid 14 times is more than 110 paid 12 times.
	a := NewQuantity(100, M14)
	b := NewQuantity(110, M12)
	assert.Equal(t, 1, a.Compare(b))
	assert.True(t, b.Less(a))
	assert.True(t, NewQuantity(1400, Yearly).Equal(a))
	assert.False(t, NewQuantity(1400, M14).Equal(a))
}

func TestSum(t *testing.T) {
	assert.Equal(t, PerYear(0), Sum())
	assert.Equal(t, NewQuantity(30, M11), Sum(NewQuantity(10, M11), NewQuantity(20, M11)))
	assert.Equal(t, PerYear(110+12), Sum(NewQuantity(10, M11), NewQuantity(1, M12)))
}

func TestPositiveDifference(t *testing.T) {
	assert.Equal(t, Money(5), PositiveDifference(10, 5))
	assert.Equal(t, Money(0), PositiveDifference(5, 10))
	assert.Equal(t, Money(0), PositiveDifference(5, 5))
	assert.Equal(t, Money(3), Money(-3).Abs())
	assert.Equal(t, "12.35€", Money(12.346).String())
}
