package irs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/units"
)

func TestTaxes2022(t *testing.T) {
	b := taxtable.MustEmbedded(2022).Brackets

	assert.Zero(t, b.Taxes(units.PerYear(4104)).Value())
	// 14000 - 4104 = 9896: 7116 at 14.5% plus 2780 at 23%.
	assert.InDelta(t, 1031.82+639.40, b.Taxes(units.PerYear(14000)).Value().Value(), 1e-6)
	assert.InDelta(t, 1671.22, b.Taxes(units.NewQuantity(1000, units.M14)).Value().Value(), 1e-6)
}

func TestTaxes2022MonotonicAndContinuous(t *testing.T) {
	b := taxtable.MustEmbedded(2022).Brackets
	const step = 13.0
	prev := b.Taxes(units.PerYear(0)).Value()
	for amount := units.Money(step); amount < 120000; amount += step {
		cur := b.Taxes(units.PerYear(amount)).Value()
		require.GreaterOrEqual(t, cur.Value(), prev.Value(), "amount=%v", amount)
		require.LessOrEqual(t, (cur - prev).Value(), 0.48*step+1e-6, "amount=%v", amount)
		prev = cur
	}
}

func TestLookup2022ReproducesTaxes(t *testing.T) {
	b := taxtable.MustEmbedded(2022).Brackets
	amounts := []units.Money{0, 100, 4103.99, 4104, 4104.01, 11220, 11220.01, 14000, 30000, 79113, 79113.5, 250000}
	for amount := units.Money(0); amount < 100000; amount += 251.3 {
		amounts = append(amounts, amount)
	}
	for _, amount := range amounts {
		m := b.Lookup(amount)
		assert.InDelta(t, b.Taxes(units.PerYear(amount)).Value().Value(), m.Tax(amount).Value(), 1e-6, "amount=%v", amount)
	}
	assert.Equal(t, -1, b.Lookup(4000).Index)
	assert.Equal(t, 0, b.Lookup(5000).Index)
	assert.Equal(t, 8, b.Lookup(200000).Index)
}

func TestWithholding2022IsMonotonic(t *testing.T) {
	w := taxtable.MustEmbedded(2022).Withholding
	families := []irs.Family{
		{},
		{Married: true, SingleEarner: true},
		{Married: true},
	}
	for _, f := range families {
		for deps := 0; deps <= 6; deps++ {
			f.Dependents = deps
			prev := -1.0
			for gross := units.Money(0); gross < 30000; gross += 7 {
				p, err := w.Percentage(units.NewQuantity(gross, units.M14), f)
				require.NoError(t, err)
				require.GreaterOrEqual(t, p, prev, "family=%+v gross=%v", f, gross)
				prev = p
			}
		}
	}
}

func TestWithholding2022Rows(t *testing.T) {
	w := taxtable.MustEmbedded(2022).Withholding
	tests := []struct {
		gross  units.Money
		family irs.Family
		want   float64
	}{
		{705, irs.Family{}, 0},
		{1000, irs.Family{}, 11.3},
		{1005, irs.Family{Dependents: 3}, 1.4},
		{1000, irs.Family{Dependents: 8}, 0},
		{1000, irs.Family{Married: true, SingleEarner: true}, 8.1},
		{1e6, irs.Family{}, 43.8},
	}
	for _, tt := range tests {
		got, err := w.Percentage(units.NewQuantity(tt.gross, units.M14), tt.family)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "gross=%v family=%+v", tt.gross, tt.family)
	}
}

func TestGrossCandidates2022(t *testing.T) {
	y := taxtable.MustEmbedded(2022)
	got, err := y.Withholding.GrossCandidates(777, 0.11, irs.Family{}, y.MinimumWage)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.InDelta(t, 1000, got[0].Value(), 1e-6)
}
