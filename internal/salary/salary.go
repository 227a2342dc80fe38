package salary

import (
	"github.com/raimundomartins/rendimentos/internal/units"
)

// Package is the employer's offer before any tax is applied.
type Package struct {
	BaseMonthly       units.Money
	Meal              MealMode
	MealDaily         units.Money
	TravelMonthly     units.Money
	RetirementMonthly units.Money
}

// Salary composes the four headings of a package under one context.
type Salary struct {
	ctx        Context
	Base       BaseSalary
	Meal       MealAllowance
	Travel     TravelExpenses
	Retirement RetirementFunds
}

func New(ctx Context, p Package) *Salary {
	return &Salary{
		ctx:        ctx,
		Base:       BaseSalary{Monthly: p.BaseMonthly},
		Meal:       NewMealAllowance(ctx, p.Meal, p.MealDaily),
		Travel:     TravelExpenses{Monthly: p.TravelMonthly},
		Retirement: RetirementFunds{Monthly: p.RetirementMonthly},
	}
}

func (s *Salary) Context() Context { return s.ctx }

func (s *Salary) Headings() []Heading {
	return []Heading{s.Base, s.Meal, s.Travel, s.Retirement}
}

// CoverageCapital is the yearly amount insured against work accidents.
func (s *Salary) CoverageCapital() units.Quantity {
	return s.Base.GrossPayment().AsYearly().Add(s.Meal.GrossPayment().AsYearly())
}

func (s *Salary) WorkAccidentsInsurance() units.Quantity {
	r := s.ctx.Rates
	capital := s.CoverageCapital()
	premium := capital.Mul(r.WorkInsurance)
	return premium.Add(capital.Mul(r.WorkAccidentFund)).Mul(1 + r.InsuranceStamp).Add(premium.Mul(r.InsuranceINEM))
}

func (s *Salary) CompanyCost() units.Quantity {
	total := s.WorkAccidentsInsurance()
	for _, h := range s.Headings() {
		total = total.Add(h.CompanyCost(s.ctx))
	}
	return total
}

func (s *Salary) plan(parcel func(Heading) units.Quantity) (units.YearlyPlan, error) {
	var p units.YearlyPlan
	for _, h := range s.Headings() {
		if err := p.AddMonthly(parcel(h)); err != nil {
			return units.YearlyPlan{}, err
		}
	}
	return p, nil
}

func (s *Salary) GrossPlan() (units.YearlyPlan, error) {
	return s.plan(Heading.GrossPayment)
}

func (s *Salary) SSTaxablePlan() (units.YearlyPlan, error) {
	return s.plan(Heading.SSTaxableParcel)
}

func (s *Salary) IRSTaxablePlan() (units.YearlyPlan, error) {
	return s.plan(Heading.IRSTaxableParcel)
}

// WithholdingPlan is the income tax retained from each kind of payment.
func (s *Salary) WithholdingPlan() (units.YearlyPlan, error) {
	taxable, err := s.IRSTaxablePlan()
	if err != nil {
		return units.YearlyPlan{}, err
	}
	return taxable.MapErr(func(m units.Money) (units.Money, error) {
		w, err := s.ctx.Year.Withholding.Withhold(units.NewQuantity(m, units.M12), s.ctx.Family)
		return w.Value(), err
	})
}

// YearlyPlanWithholdNet is what each payment of the year deposits after
// social security and withholding.
func (s *Salary) YearlyPlanWithholdNet() (units.YearlyPlan, error) {
	gross, err := s.GrossPlan()
	if err != nil {
		return units.YearlyPlan{}, err
	}
	ss, err := s.SSTaxablePlan()
	if err != nil {
		return units.YearlyPlan{}, err
	}
	withheld, err := s.WithholdingPlan()
	if err != nil {
		return units.YearlyPlan{}, err
	}
	return gross.Sub(ss.Scale(s.ctx.Rates.WorkerTSU)).Sub(withheld), nil
}

// AnnualIRS is the exact yearly liability under the bracket table.
func (s *Salary) AnnualIRS() (units.Quantity, error) {
	taxable, err := s.IRSTaxablePlan()
	if err != nil {
		return units.Quantity{}, err
	}
	return s.ctx.Year.Brackets.Taxes(taxable.YearlyTotal()), nil
}

// YearlyPlanRealNet is the yearly net income once the tax return settles the
// difference between withholding and the real liability.
func (s *Salary) YearlyPlanRealNet() (units.Quantity, error) {
	gross, err := s.GrossPlan()
	if err != nil {
		return units.Quantity{}, err
	}
	ss, err := s.SSTaxablePlan()
	if err != nil {
		return units.Quantity{}, err
	}
	irs, err := s.AnnualIRS()
	if err != nil {
		return units.Quantity{}, err
	}
	return gross.Sub(ss.Scale(s.ctx.Rates.WorkerTSU)).YearlyTotal().Sub(irs), nil
}
