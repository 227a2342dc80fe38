// Package insurance prices a collective work-accidents policy covering several workers.
package insurance

import (
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/units"
)

// Rates are the state levies charged on top of the insurer's premium.
type Rates struct {
	INEM  float64 `mapstructure:"inem"`
	FAT   float64 `mapstructure:"fat"`
	Stamp float64 `mapstructure:"stamp"`
}

func DefaultRates() Rates {
	return Rates{INEM: 0.02, FAT: 0.0015, Stamp: 0.04}
}

// Policy is a general work-accidents policy: a premium rate on the insured
// capital plus a one-off fee for opening or changing the policy.
type Policy struct {
	PremiumRate float64
	RecordCost  units.Money
	Rates       Rates
}

func NewPolicy(premiumRate float64, recordCost units.Money) Policy {
	return Policy{PremiumRate: premiumRate, RecordCost: recordCost, Rates: DefaultRates()}
}

// RecordCostWithTaxes counts as premium for the levies.
func (p Policy) RecordCostWithTaxes() units.Money {
	return p.RecordCost.Mul(1 + p.Rates.Stamp + p.Rates.INEM)
}

func (p Policy) CoverageCapital(s *salary.Salary) units.Quantity {
	return s.CoverageCapital()
}

func (p Policy) Premium(s *salary.Salary) units.Quantity {
	return p.CoverageCapital(s).Mul(p.PremiumRate)
}

func (p Policy) FATCost(s *salary.Salary) units.Quantity {
	return p.CoverageCapital(s).Mul(p.Rates.FAT)
}

func (p Policy) INEMCost(s *salary.Salary) units.Quantity {
	return p.Premium(s).Mul(p.Rates.INEM)
}

func (p Policy) TotalCost(s *salary.Salary) units.Quantity {
	return p.CoverageCapital(s).Mul((p.PremiumRate + p.Rates.FAT) * (1 + p.Rates.INEM + p.Rates.Stamp))
}

// Quote is the yearly price of covering a group of workers.
type Quote struct {
	Workers    int
	Capital    units.Money
	Premiums   units.Money
	RecordCost units.Money
	Total      units.Money
}

func (p Policy) Quote(salaries ...*salary.Salary) Quote {
	q := Quote{Workers: len(salaries), RecordCost: p.RecordCostWithTaxes()}
	for _, s := range salaries {
		q.Capital += p.CoverageCapital(s).Value()
		q.Premiums += p.TotalCost(s).Value()
	}
	q.Total = q.Premiums + q.RecordCost
	return q
}
