package salary

import (
	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/units"
)

// Rates are the contribution and surcharge rates applied on top of the tax tables.
type Rates struct {
	CompanyTSU              float64     `mapstructure:"company_tsu"`
	WorkerTSU               float64     `mapstructure:"worker_tsu"`
	SalaryGuaranteeFund     float64     `mapstructure:"salary_guarantee_fund"`
	MealCardTax             float64     `mapstructure:"meal_card_tax"`
	MealCardCost            units.Money `mapstructure:"meal_card_cost"`
	UnimputedTravelExpenses float64     `mapstructure:"unimputed_travel_expenses"`
	RetirementFundSurcharge float64     `mapstructure:"retirement_fund_surcharge"`
	WorkInsurance           float64     `mapstructure:"work_insurance"`
	WorkAccidentFund        float64     `mapstructure:"work_accident_fund"`
	InsuranceStamp          float64     `mapstructure:"insurance_stamp"`
	InsuranceINEM           float64     `mapstructure:"insurance_inem"`
}

func DefaultRates() Rates {
	return Rates{
		CompanyTSU:              0.2375,
		WorkerTSU:               0.11,
		SalaryGuaranteeFund:     0.01,
		MealCardTax:             0.0078,
		MealCardCost:            4,
		UnimputedTravelExpenses: 0.05,
		RetirementFundSurcharge: 0.02,
		WorkInsurance:           0.0055,
		WorkAccidentFund:        0.0015,
		InsuranceStamp:          0.04,
		InsuranceINEM:           0.025,
	}
}

// Context is the read-only configuration shared by every computation of a run.
type Context struct {
	Family               irs.Family
	Year                 *taxtable.Year
	Rates                Rates
	Workdays             int
	ImputeTravelExpenses bool
}

func NewContext(year *taxtable.Year, family irs.Family) Context {
	return Context{
		Family:   family,
		Year:     year,
		Rates:    DefaultRates(),
		Workdays: units.DefaultWorkdays,
	}
}
