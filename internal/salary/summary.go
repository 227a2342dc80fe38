package salary

import "github.com/raimundomartins/rendimentos/internal/units"

// Summary is what a driver shows for one package. Amounts are yearly unless named monthly.
type Summary struct {
	CompanyCost        units.Money
	Insurance          units.Money
	GrossYearly        units.Money
	NetAverageMonthly  units.Money
	NetTypicalMonthly  units.Money
	NetYearlyWithheld  units.Money
	NetYearlyReal      units.Money
	AnnualIRS          units.Money
	WithheldIRS        units.Money
	RetirementIRS      units.Money
	TypicalWithholding float64
	AverageWithholding float64
}

// Settlement is the tax return balance: positive when the worker gets money back.
func (s Summary) Settlement() units.Money {
	return s.WithheldIRS - s.AnnualIRS
}

func (s *Salary) Summary() (Summary, error) {
	gross, err := s.GrossPlan()
	if err != nil {
		return Summary{}, err
	}
	withheldNet, err := s.YearlyPlanWithholdNet()
	if err != nil {
		return Summary{}, err
	}
	withheld, err := s.WithholdingPlan()
	if err != nil {
		return Summary{}, err
	}
	realNet, err := s.YearlyPlanRealNet()
	if err != nil {
		return Summary{}, err
	}
	annual, err := s.AnnualIRS()
	if err != nil {
		return Summary{}, err
	}
	taxable, err := s.IRSTaxablePlan()
	if err != nil {
		return Summary{}, err
	}
	typical, err := s.ctx.Year.Withholding.Percentage(units.NewQuantity(taxable.Regular, units.M12), s.ctx.Family)
	if err != nil {
		return Summary{}, err
	}

	var average float64
	if total := taxable.YearlyTotal().Value(); total > 0 {
		average = withheld.YearlyTotal().Value().Value() / total.Value() * 100
	}

	return Summary{
		CompanyCost:        s.CompanyCost().Value(),
		Insurance:          s.WorkAccidentsInsurance().Value(),
		GrossYearly:        gross.YearlyTotal().Value(),
		NetAverageMonthly:  realNet.Value().Div(12),
		NetTypicalMonthly:  withheldNet.Regular,
		NetYearlyWithheld:  withheldNet.YearlyTotal().Value(),
		NetYearlyReal:      realNet.Value(),
		AnnualIRS:          annual.Value(),
		WithheldIRS:        withheld.YearlyTotal().Value(),
		RetirementIRS:      s.retirementIRS(taxable),
		TypicalWithholding: typical,
		AverageWithholding: average,
	}, nil
}

// retirementIRS is the share of the yearly liability caused by retirement contributions.
func (s *Salary) retirementIRS(taxable units.YearlyPlan) units.Money {
	without := taxable.Sub(units.YearlyPlan{Regular: s.Retirement.Monthly, Vacation: s.Retirement.Monthly})
	b := s.ctx.Year.Brackets
	return b.Taxes(taxable.YearlyTotal()).Value() - b.Taxes(without.YearlyTotal()).Value()
}
