package salary

import (
	"fmt"

	"github.com/raimundomartins/rendimentos/internal/units"
)

type Kind int

const (
	KindBaseSalary Kind = iota
	KindMealAllowance
	KindTravelExpenses
	KindRetirementFunds
)

func (k Kind) String() string {
	switch k {
	case KindBaseSalary:
		return "base_salary"
	case KindMealAllowance:
		return "meal_allowance"
	case KindTravelExpenses:
		return "travel_expenses"
	case KindRetirementFunds:
		return "retirement_funds"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Heading is one component of a salary package. The set of implementations is closed.
type Heading interface {
	Kind() Kind
	// GrossPayment is always a monthly quantity.
	GrossPayment() units.Quantity
	SSTaxableParcel() units.Quantity
	IRSTaxableParcel() units.Quantity
	CompanyCost(ctx Context) units.Quantity
	heading()
}

type BaseSalary struct {
	Monthly units.Money
}

func (BaseSalary) Kind() Kind { return KindBaseSalary }
func (BaseSalary) heading()   {}

func (b BaseSalary) GrossPayment() units.Quantity {
	return units.NewQuantity(b.Monthly, units.M14)
}

func (b BaseSalary) SSTaxableParcel() units.Quantity  { return b.GrossPayment() }
func (b BaseSalary) IRSTaxableParcel() units.Quantity { return b.GrossPayment() }

func (b BaseSalary) CompanyCost(ctx Context) units.Quantity {
	return b.GrossPayment().AsYearly().Mul(1 + ctx.Rates.CompanyTSU + ctx.Rates.SalaryGuaranteeFund)
}

// BaseSalaryForCost is the base salary whose company cost is the given amount.
func BaseSalaryForCost(ctx Context, cost units.Quantity) BaseSalary {
	yearly := cost.AsYearly().Div(1 + ctx.Rates.CompanyTSU + ctx.Rates.SalaryGuaranteeFund)
	return BaseSalary{Monthly: yearly.In(units.M14).Value()}
}

type MealMode int

const (
	MealNone MealMode = iota
	MealCash
	MealCard
)

func (m MealMode) String() string {
	switch m {
	case MealCash:
		return "cash"
	case MealCard:
		return "card"
	}
	return "none"
}

func ParseMealMode(s string) (MealMode, error) {
	switch s {
	case "", "none":
		return MealNone, nil
	case "cash":
		return MealCash, nil
	case "card":
		return MealCard, nil
	}
	return MealNone, fmt.Errorf("unknown meal allowance mode %q", s)
}

// MealAllowance is paid per workday and spread over 11 monthly payments.
// The part of the daily amount above the non-taxable ceiling pays both taxes.
type MealAllowance struct {
	Mode     MealMode
	Daily    units.Money
	Ceiling  units.Money
	Workdays int
}

// NewMealAllowance resolves the ceiling for the mode from the context's year.
// A zero daily amount means the ceiling itself.
func NewMealAllowance(ctx Context, mode MealMode, daily units.Money) MealAllowance {
	var ceiling units.Money
	switch mode {
	case MealCash:
		ceiling = ctx.Year.NonTaxation.MealSubsidy
	case MealCard:
		ceiling = ctx.Year.NonTaxation.MealCard
	default:
		return MealAllowance{Workdays: ctx.Workdays}
	}
	if daily <= 0 {
		daily = ceiling
	}
	return MealAllowance{Mode: mode, Daily: daily, Ceiling: ceiling, Workdays: ctx.Workdays}
}

func (MealAllowance) Kind() Kind { return KindMealAllowance }
func (MealAllowance) heading()   {}

func (m MealAllowance) monthly(daily units.Money) units.Quantity {
	if m.Mode == MealNone {
		return units.NewQuantity(0, units.M11)
	}
	return units.NewQuantity(daily, units.Workdaily(m.Workdays)).In(units.M11)
}

func (m MealAllowance) GrossPayment() units.Quantity { return m.monthly(m.Daily) }

func (m MealAllowance) SSTaxableParcel() units.Quantity {
	return m.monthly(units.PositiveDifference(m.Daily, m.Ceiling))
}

func (m MealAllowance) IRSTaxableParcel() units.Quantity { return m.SSTaxableParcel() }

func (m MealAllowance) CompanyCost(ctx Context) units.Quantity {
	paid := m.GrossPayment().AsYearly()
	cost := paid.Add(m.SSTaxableParcel().AsYearly().Mul(ctx.Rates.CompanyTSU))
	if m.Mode == MealCard {
		cost = cost.Add(units.PerYear(ctx.Rates.MealCardCost)).Add(paid.Mul(ctx.Rates.MealCardTax))
	}
	return cost
}

// TravelExpenses are reimbursed costs, free of both taxes.
type TravelExpenses struct {
	Monthly units.Money
}

func (TravelExpenses) Kind() Kind { return KindTravelExpenses }
func (TravelExpenses) heading()   {}

func (t TravelExpenses) GrossPayment() units.Quantity {
	return units.NewQuantity(t.Monthly, units.M11)
}

func (t TravelExpenses) SSTaxableParcel() units.Quantity  { return units.NewQuantity(0, units.M11) }
func (t TravelExpenses) IRSTaxableParcel() units.Quantity { return units.NewQuantity(0, units.M11) }

// CompanyCost carries the autonomous taxation surcharge unless the expenses are imputed to a client.
func (t TravelExpenses) CompanyCost(ctx Context) units.Quantity {
	paid := t.GrossPayment().AsYearly()
	if ctx.ImputeTravelExpenses {
		return paid
	}
	return paid.Mul(1 + ctx.Rates.UnimputedTravelExpenses)
}

// RetirementFunds are employer contributions to a retirement plan. They pay
// income tax but no social security.
type RetirementFunds struct {
	Monthly units.Money
}

func (RetirementFunds) Kind() Kind { return KindRetirementFunds }
func (RetirementFunds) heading()   {}

func (r RetirementFunds) GrossPayment() units.Quantity {
	return units.NewQuantity(r.Monthly, units.M12)
}

func (r RetirementFunds) SSTaxableParcel() units.Quantity  { return units.NewQuantity(0, units.M12) }
func (r RetirementFunds) IRSTaxableParcel() units.Quantity { return r.GrossPayment() }

func (r RetirementFunds) CompanyCost(ctx Context) units.Quantity {
	return r.GrossPayment().AsYearly().Mul(1 + ctx.Rates.RetirementFundSurcharge)
}
