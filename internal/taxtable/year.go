package taxtable

import (
	"errors"
	"fmt"
	"sort"

	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/units"
)

var ErrYearNotSupported = errors.New("tax_year_not_supported")

// NonTaxation holds the daily or per-km amounts exempt from both taxes.
type NonTaxation struct {
	MealSubsidy  units.Money
	MealCard     units.Money
	TravelPerKm  units.Money
	TravelPerDay units.Money
}

// Year is the immutable set of tables published for one tax year.
type Year struct {
	Year        int
	Brackets    irs.Brackets
	Withholding irs.WithholdingTables
	Workdays    int
	MinimumWage units.Money
	IAS         units.Money
	NonTaxation NonTaxation
}

func (y *Year) Validate() error {
	if err := y.Brackets.Validate(); err != nil {
		return fmt.Errorf("year %d brackets: %w", y.Year, err)
	}
	if err := y.Withholding.Validate(); err != nil {
		return fmt.Errorf("year %d withholding: %w", y.Year, err)
	}
	return nil
}

type rawBracket struct {
	Limit *float64 `yaml:"limit" json:"limit"`
	Rate  float64  `yaml:"rate" json:"rate"`
}

type rawRow struct {
	Limit *float64                             `yaml:"limit" json:"limit"`
	Rates [irs.MaxDependentsColumn + 1]float64 `yaml:"rates" json:"rates"`
}

type rawYear struct {
	Year        int     `yaml:"year" json:"year"`
	ExemptFloor float64 `yaml:"exempt_floor" json:"exempt_floor"`
	Workdays    int     `yaml:"workdays" json:"workdays"`
	MinimumWage float64 `yaml:"minimum_wage" json:"minimum_wage"`
	IAS         float64 `yaml:"ias" json:"ias"`
	NonTaxation struct {
		MealSubsidy  float64 `yaml:"meal_subsidy" json:"meal_subsidy"`
		MealCard     float64 `yaml:"meal_card" json:"meal_card"`
		TravelPerKm  float64 `yaml:"travel_per_km" json:"travel_per_km"`
		TravelPerDay float64 `yaml:"travel_per_day" json:"travel_per_day"`
	} `yaml:"non_taxation" json:"non_taxation"`
	Brackets    []rawBracket `yaml:"brackets" json:"brackets"`
	Withholding struct {
		Unmarried           []rawRow `yaml:"unmarried" json:"unmarried"`
		MarriedSingleEarner []rawRow `yaml:"married_single_earner" json:"married_single_earner"`
		MarriedDualEarner   []rawRow `yaml:"married_dual_earner" json:"married_dual_earner"`
	} `yaml:"withholding" json:"withholding"`
}

func limit(l *float64) units.Money {
	if l == nil {
		return irs.Unbounded
	}
	return units.Money(*l)
}

func rows(raw []rawRow) irs.WithholdingTable {
	out := make(irs.WithholdingTable, len(raw))
	for i, r := range raw {
		out[i] = irs.WithholdingRow{Limit: limit(r.Limit), Rates: r.Rates}
	}
	return out
}

func (r *rawYear) build() (*Year, error) {
	y := &Year{
		Year:        r.Year,
		Brackets:    irs.Brackets{ExemptFloor: units.Money(r.ExemptFloor)},
		Workdays:    r.Workdays,
		MinimumWage: units.Money(r.MinimumWage),
		IAS:         units.Money(r.IAS),
		NonTaxation: NonTaxation{
			MealSubsidy:  units.Money(r.NonTaxation.MealSubsidy),
			MealCard:     units.Money(r.NonTaxation.MealCard),
			TravelPerKm:  units.Money(r.NonTaxation.TravelPerKm),
			TravelPerDay: units.Money(r.NonTaxation.TravelPerDay),
		},
		Withholding: irs.WithholdingTables{
			Unmarried:           rows(r.Withholding.Unmarried),
			MarriedSingleEarner: rows(r.Withholding.MarriedSingleEarner),
			MarriedDualEarner:   rows(r.Withholding.MarriedDualEarner),
		},
	}
	for _, b := range r.Brackets {
		y.Brackets.Table = append(y.Brackets.Table, irs.Bracket{Limit: limit(b.Limit), Rate: b.Rate})
	}
	if y.Year == 0 {
		return nil, fmt.Errorf("%w: missing year", irs.ErrMalformedTable)
	}
	if err := y.Validate(); err != nil {
		return nil, err
	}
	return y, nil
}

func sortedYears(m map[int]*Year) []int {
	out := make([]int, 0, len(m))
	for y := range m {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
