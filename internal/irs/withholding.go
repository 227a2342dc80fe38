package irs

import (
	"fmt"
	"math"

	"github.com/raimundomartins/rendimentos/internal/units"
)

// WithholdingRow applies to monthly payments up to Limit. Rates are
// percentages indexed by the number of dependents, the last one meaning 5 or more.
type WithholdingRow struct {
	Limit units.Money
	Rates [MaxDependentsColumn + 1]float64
}

type WithholdingTable []WithholdingRow

// WithholdingTables holds the three tables published for a year.
type WithholdingTables struct {
	Unmarried           WithholdingTable
	MarriedSingleEarner WithholdingTable
	MarriedDualEarner   WithholdingTable
}

func (t WithholdingTables) ForFamily(f Family) WithholdingTable {
	switch {
	case !f.Married:
		return t.Unmarried
	case f.SingleEarner:
		return t.MarriedSingleEarner
	default:
		return t.MarriedDualEarner
	}
}

func (t WithholdingTables) Validate() error {
	for name, table := range map[string]WithholdingTable{
		"unmarried":             t.Unmarried,
		"married_single_earner": t.MarriedSingleEarner,
		"married_dual_earner":   t.MarriedDualEarner,
	} {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Validate checks the table can answer every lookup and never lowers the rate
// as the gross payment grows.
func (t WithholdingTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty withholding table", ErrMalformedTable)
	}
	var prev *WithholdingRow
	for i := range t {
		row := &t[i]
		for col, rate := range row.Rates {
			if rate < 0 || rate > 100 {
				return fmt.Errorf("%w: row %d column %d rate %v outside [0,100]", ErrMalformedTable, i, col, rate)
			}
			if prev != nil && rate < prev.Rates[col] {
				return fmt.Errorf("%w: row %d column %d rate decreases", ErrMalformedTable, i, col)
			}
		}
		if prev != nil && row.Limit <= prev.Limit {
			return fmt.Errorf("%w: row %d limit %v not above %v", ErrMalformedTable, i, row.Limit, prev.Limit)
		}
		prev = row
	}
	if !math.IsInf(prev.Limit.Value(), 1) {
		return fmt.Errorf("%w: last withholding row must be unbounded", ErrMalformedTable)
	}
	return nil
}

func (t WithholdingTable) row(gross units.Money) WithholdingRow {
	for _, r := range t {
		if r.Limit >= gross {
			return r
		}
	}
	panic(fmt.Sprintf("irs: withholding table has no row for %v", gross))
}

// Percentage returns the withholding rate, in percent, for one monthly payment.
func (t WithholdingTables) Percentage(gross units.Quantity, f Family) (float64, error) {
	if !gross.Period().IsMonthly() {
		return 0, fmt.Errorf("%w: withholding needs a monthly payment, got %s", units.ErrNotMonthly, gross.Period())
	}
	return t.ForFamily(f).row(gross.Value()).Rates[f.column()], nil
}

// Rate is Percentage as a multiplier.
func (t WithholdingTables) Rate(gross units.Quantity, f Family) (float64, error) {
	p, err := t.Percentage(gross, f)
	if err != nil {
		return 0, err
	}
	return p / 100, nil
}

// Withhold returns the tax retained from one monthly payment.
func (t WithholdingTables) Withhold(gross units.Quantity, f Family) (units.Quantity, error) {
	r, err := t.Rate(gross, f)
	if err != nil {
		return units.Quantity{}, err
	}
	return gross.Mul(r), nil
}

// GrossCandidates lists the monthly gross payments that leave net after social
// security and withholding. Each table row yields at most one candidate, kept
// only when it falls inside that row and is not below the minimum wage.
func (t WithholdingTables) GrossCandidates(net units.Money, socialSecurity float64, f Family, minimumWage units.Money) ([]units.Money, error) {
	var out []units.Money
	var lower units.Money
	col := f.column()
	for _, r := range t.ForFamily(f) {
		g := net.Div(1 - socialSecurity - r.Rates[col]/100)
		if g > lower && g <= r.Limit && g >= minimumWage {
			out = append(out, g)
		}
		lower = r.Limit
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: net %v", ErrNoGrossMatch, net)
	}
	return out, nil
}
