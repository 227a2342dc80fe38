package irs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raimundomartins/rendimentos/internal/units"
)

func testTables() WithholdingTables {
	single := WithholdingTable{
		{Limit: 700, Rates: [6]float64{0, 0, 0, 0, 0, 0}},
		{Limit: 1000, Rates: [6]float64{10, 8, 6, 4, 2, 1}},
		{Limit: Unbounded, Rates: [6]float64{20, 18, 16, 14, 12, 11}},
	}
	return WithholdingTables{
		Unmarried:           single,
		MarriedSingleEarner: WithholdingTable{{Limit: Unbounded, Rates: [6]float64{5, 5, 5, 5, 5, 5}}},
		MarriedDualEarner:   WithholdingTable{{Limit: Unbounded, Rates: [6]float64{7, 7, 7, 7, 7, 7}}},
	}
}

func TestPercentageSelectsRowAndColumn(t *testing.T) {
	tables := testTables()
	tests := []struct {
		gross  units.Money
		family Family
		want   float64
	}{
		{500, Family{}, 0},
		{700, Family{}, 0},
		{700.01, Family{}, 10},
		{1000, Family{Dependents: 2}, 6},
		{1500, Family{Dependents: 5}, 11},
		{1500, Family{Dependents: 9}, 11},
		{1500, Family{Dependents: -1}, 20},
		{1500, Family{Married: true, SingleEarner: true}, 5},
		{1500, Family{Married: true}, 7},
		{1500, Family{SingleEarner: true}, 20},
	}
	for _, tt := range tests {
		for _, p := range []units.Period{units.M11, units.M12, units.M14} {
			got, err := tables.Percentage(units.NewQuantity(tt.gross, p), tt.family)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "gross=%v family=%+v", tt.gross, tt.family)
		}
	}
}

func TestRateAndWithhold(t *testing.T) {
	tables := testTables()
	r, err := tables.Rate(units.NewQuantity(900, units.M14), Family{})
	require.NoError(t, err)
	assert.InDelta(t, 0.10, r, 1e-12)

	w, err := tables.Withhold(units.NewQuantity(900, units.M14), Family{})
	require.NoError(t, err)
	assert.Equal(t, units.M14, w.Period())
	assert.InDelta(t, 90, w.Value().Value(), 1e-9)
}

func TestPercentageRejectsNonMonthly(t *testing.T) {
	tables := testTables()
	for _, p := range []units.Period{units.Yearly, units.Workdaily(0), units.Hourly(40)} {
		_, err := tables.Percentage(units.NewQuantity(900, p), Family{})
		assert.ErrorIs(t, err, units.ErrNotMonthly, p.String())
		_, err = tables.Withhold(units.NewQuantity(900, p), Family{})
		assert.ErrorIs(t, err, units.ErrNotMonthly, p.String())
	}
}

func TestFallThroughPanics(t *testing.T) {
	tables := WithholdingTables{Unmarried: WithholdingTable{{Limit: 100}}}
	assert.Panics(t, func() {
		tables.Percentage(units.NewQuantity(200, units.M12), Family{})
	})
}

func TestWithholdingValidate(t *testing.T) {
	assert.NoError(t, testTables().Validate())

	bad := testTables()
	bad.MarriedDualEarner = WithholdingTable{{Limit: 100}}
	assert.ErrorIs(t, bad.Validate(), ErrMalformedTable)

	bad = testTables()
	bad.Unmarried = WithholdingTable{
		{Limit: 100, Rates: [6]float64{5}},
		{Limit: Unbounded, Rates: [6]float64{4}},
	}
	assert.ErrorIs(t, bad.Validate(), ErrMalformedTable)

	bad = testTables()
	bad.Unmarried = WithholdingTable{{Limit: Unbounded, Rates: [6]float64{101}}}
	assert.ErrorIs(t, bad.Validate(), ErrMalformedTable)

	bad = testTables()
	bad.MarriedSingleEarner = nil
	assert.ErrorIs(t, bad.Validate(), ErrMalformedTable)
}

func TestGrossCandidates(t *testing.T) {
	tables := testTables()
	const ss = 0.11

	// 900 gross at 10% leaves 900*(1-0.11-0.10) = 711, and so does about 1030 at 20%.
	got, err := tables.GrossCandidates(711, ss, Family{}, 600)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 900, got[0].Value(), 1e-9)
	assert.InDelta(t, 711/0.69, got[1].Value(), 1e-9)

	got, err = tables.GrossCandidates(800, ss, Family{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 800/0.69, got[0].Value(), 1e-9)

	_, err = tables.GrossCandidates(100, ss, Family{}, 600)
	assert.ErrorIs(t, err, ErrNoGrossMatch)
}
