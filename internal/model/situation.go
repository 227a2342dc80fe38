package model

import (
	"github.com/shopspring/decimal"

	"github.com/raimundomartins/rendimentos/internal/units"
)

type Situation struct {
	SalaryPackage *SalaryPackage `json:"salary_package"`
}

// SalaryPackage holds monthly amounts as entered; Payroll is filled by calculate_payroll.
type SalaryPackage struct {
	PackageID       string        `json:"package_id"`
	EmployeeName    string        `json:"employee_name"`
	Year            int           `json:"year"`
	Family          Family        `json:"family"`
	BaseSalary      float64       `json:"base_salary"`
	MealAllowance   MealAllowance `json:"meal_allowance"`
	TravelExpenses  float64       `json:"travel_expenses"`
	TravelImputed   bool          `json:"travel_imputed_to_client"`
	RetirementFunds float64       `json:"retirement_funds"`
	Payroll         *Payroll      `json:"payroll"`
	GrossForNet     *GrossForNet  `json:"gross_for_net"`
}

type Family struct {
	Married      bool `json:"married"`
	SingleEarner bool `json:"single_earner"`
	Dependents   int  `json:"dependents"`
}

type MealAllowance struct {
	Mode  string  `json:"mode"`
	Daily float64 `json:"daily"`
}

// Payroll amounts are rounded to cents; rates are percentages.
type Payroll struct {
	CompanyCost        decimal.Decimal `json:"company_cost"`
	WorkInsurance      decimal.Decimal `json:"work_insurance"`
	GrossYearly        decimal.Decimal `json:"gross_yearly"`
	NetAverageMonthly  decimal.Decimal `json:"net_average_monthly"`
	NetTypicalMonthly  decimal.Decimal `json:"net_typical_monthly"`
	NetYearlyWithheld  decimal.Decimal `json:"net_yearly_withheld"`
	NetYearlyReal      decimal.Decimal `json:"net_yearly_real"`
	AnnualIRS          decimal.Decimal `json:"annual_irs"`
	WithheldIRS        decimal.Decimal `json:"withheld_irs"`
	Settlement         decimal.Decimal `json:"settlement"`
	RetirementIRS      decimal.Decimal `json:"retirement_irs"`
	TypicalWithholding decimal.Decimal `json:"typical_withholding_pct"`
	AverageWithholding decimal.Decimal `json:"average_withholding_pct"`
}

type GrossForNet struct {
	MonthlyNet  decimal.Decimal   `json:"monthly_net"`
	Withholding []decimal.Decimal `json:"withholding_candidates"`
	Exact       decimal.Decimal   `json:"bracket_exact"`
}

// Cents rounds an amount for presentation.
func Cents(m units.Money) decimal.Decimal {
	return decimal.NewFromFloat(m.Value()).Round(2)
}

// Percent rounds a percentage for presentation.
func Percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Round(2)
}
