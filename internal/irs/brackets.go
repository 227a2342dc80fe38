package irs

import (
	"fmt"
	"math"

	"github.com/raimundomartins/rendimentos/internal/units"
)

// Unbounded is the limit of the last bracket of a table.
var Unbounded = units.Money(math.Inf(1))

// Bracket is a yearly upper limit, measured above the exempt floor, and its marginal rate.
type Bracket struct {
	Limit units.Money
	Rate  float64
}

// Brackets is a progressive income-tax table for one year.
type Brackets struct {
	ExemptFloor units.Money
	Table       []Bracket
}

func (b Brackets) Validate() error {
	if b.ExemptFloor < 0 {
		return fmt.Errorf("%w: negative exempt floor %v", ErrMalformedTable, b.ExemptFloor)
	}
	if len(b.Table) == 0 {
		return fmt.Errorf("%w: no brackets", ErrMalformedTable)
	}
	var prev units.Money
	for i, br := range b.Table {
		if br.Rate < 0 || br.Rate > 1 {
			return fmt.Errorf("%w: bracket %d rate %v outside [0,1]", ErrMalformedTable, i, br.Rate)
		}
		if br.Limit <= prev {
			return fmt.Errorf("%w: bracket %d limit %v not above %v", ErrMalformedTable, i, br.Limit, prev)
		}
		prev = br.Limit
	}
	if !math.IsInf(prev.Value(), 1) {
		return fmt.Errorf("%w: last bracket must be unbounded", ErrMalformedTable)
	}
	return nil
}

// Taxes is the exact progressive tax owed on a yearly taxable amount.
// Non-yearly quantities are normalized first.
func (b Brackets) Taxes(taxable units.Quantity) units.Quantity {
	amount := units.PositiveDifference(taxable.AsYearly().Value(), b.ExemptFloor)
	var tax, prev units.Money
	for _, br := range b.Table {
		upper := amount.Min(br.Limit)
		tax += (upper - prev).Mul(br.Rate)
		if amount <= br.Limit {
			break
		}
		prev = br.Limit
	}
	return units.PerYear(tax)
}

// BracketMatch is one linear piece of the tax function: on [Lower, Bound)
// the tax owed is Rate*amount - Deduction. Bounds are gross yearly amounts,
// so the exempt floor is already added in.
type BracketMatch struct {
	// Index into Brackets.Table; -1 for amounts under the exempt floor.
	Index     int
	Lower     units.Money
	Bound     units.Money
	Rate      float64
	Deduction units.Money
}

// Tax evaluates the linear form at amount.
func (m BracketMatch) Tax(amount units.Money) units.Money {
	return amount.Mul(m.Rate) - m.Deduction
}

// walk visits every linear piece in ascending order until fn returns false.
// The exempt floor acts as a leading 0% band.
func (b Brackets) walk(fn func(BracketMatch) bool) {
	m := BracketMatch{Index: -1, Bound: b.ExemptFloor}
	if b.ExemptFloor > 0 && !fn(m) {
		return
	}
	prevBound, prevRate := b.ExemptFloor, 0.0
	var deduction units.Money
	for i, br := range b.Table {
		deduction += prevBound.Mul(br.Rate - prevRate)
		m = BracketMatch{
			Index:     i,
			Lower:     prevBound,
			Bound:     b.ExemptFloor + br.Limit,
			Rate:      br.Rate,
			Deduction: deduction,
		}
		if !fn(m) {
			return
		}
		prevBound, prevRate = m.Bound, br.Rate
	}
}

// Lookup returns the linear piece containing a yearly taxable amount: the
// first one whose bound exceeds it.
func (b Brackets) Lookup(amount units.Money) BracketMatch {
	var found BracketMatch
	b.walk(func(m BracketMatch) bool {
		found = m
		return amount >= m.Bound
	})
	return found
}

// GrossForNet solves net = gross*(1-socialSecurity) - Taxes(gross) for a
// yearly gross fully subject to both taxes.
func (b Brackets) GrossForNet(net units.Quantity, socialSecurity float64) (units.Quantity, error) {
	target := net.AsYearly().Value()
	var gross units.Money
	found := false
	b.walk(func(m BracketMatch) bool {
		g := (target - m.Deduction).Div(1 - socialSecurity - m.Rate)
		if g >= m.Lower && g <= m.Bound {
			gross, found = g, true
			return false
		}
		return true
	})
	if !found {
		return units.Quantity{}, fmt.Errorf("%w: net %v", ErrNoGrossMatch, target)
	}
	return units.PerYear(gross), nil
}
