package mutations

import (
	"context"
	"math"

	"github.com/raimundomartins/rendimentos/internal/model"
)

// withholdingTolerance is how far the withheld yearly net may drift from the
// bracket-exact one before a warning is raised.
const withholdingTolerance = 0.05

type CalculatePayrollHandler struct {
	env *Env
}

func (h *CalculatePayrollHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	if state.SalaryPackage.BaseSalary <= 0 {
		return []model.CalculationMessage{critical("NO_BASE_SALARY", "A base salary is required to calculate the payroll")}
	}
	return nil
}

func (h *CalculatePayrollHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	p := state.SalaryPackage
	s, msgs := h.env.salary(ctx, p)
	if msgs != nil {
		return msgs
	}
	sum, err := s.Summary()
	if err != nil {
		return []model.CalculationMessage{critical("CALCULATION_FAILED", "%v", err)}
	}

	p.Payroll = &model.Payroll{
		CompanyCost:        model.Cents(sum.CompanyCost),
		WorkInsurance:      model.Cents(sum.Insurance),
		GrossYearly:        model.Cents(sum.GrossYearly),
		NetAverageMonthly:  model.Cents(sum.NetAverageMonthly),
		NetTypicalMonthly:  model.Cents(sum.NetTypicalMonthly),
		NetYearlyWithheld:  model.Cents(sum.NetYearlyWithheld),
		NetYearlyReal:      model.Cents(sum.NetYearlyReal),
		AnnualIRS:          model.Cents(sum.AnnualIRS),
		WithheldIRS:        model.Cents(sum.WithheldIRS),
		Settlement:         model.Cents(sum.Settlement()),
		RetirementIRS:      model.Cents(sum.RetirementIRS),
		TypicalWithholding: model.Percent(sum.TypicalWithholding),
		AverageWithholding: model.Percent(sum.AverageWithholding),
	}

	if sum.NetYearlyReal > 0 {
		drift := math.Abs((sum.NetYearlyWithheld - sum.NetYearlyReal).Value()) / sum.NetYearlyReal.Value()
		if drift > withholdingTolerance {
			return []model.CalculationMessage{warning("WITHHOLDING_DIVERGES",
				"Withheld net %v differs from the yearly liability net %v by %.1f%%", sum.NetYearlyWithheld, sum.NetYearlyReal, drift*100)}
		}
	}
	return nil
}
