package mutations

import (
	"context"

	"github.com/raimundomartins/rendimentos/internal/model"
)

type applyRaiseProps struct {
	Percentage        float64 `json:"percentage" validate:"gte=-10,lte=10"`
	IncludeRetirement bool    `json:"include_retirement"`
}

// ApplyRaiseHandler scales the base salary, and optionally the retirement
// contribution, by 1+percentage. Amounts that would turn negative are clamped to 0.
type ApplyRaiseHandler struct {
	env *Env
}

func (h *ApplyRaiseHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props applyRaiseProps
	if msgs := h.env.decode(mutation, &props); msgs != nil {
		return msgs
	}
	if state.SalaryPackage.BaseSalary == 0 {
		return []model.CalculationMessage{warning("NO_BASE_SALARY", "Raise applied to a package without base salary")}
	}
	return nil
}

func (h *ApplyRaiseHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props applyRaiseProps
	h.env.decode(mutation, &props)
	p := state.SalaryPackage

	var msgs []model.CalculationMessage
	raise := func(name string, amount *float64) {
		v := *amount * (1 + props.Percentage)
		if v < 0 {
			v = 0
			msgs = append(msgs, warning("NEGATIVE_SALARY_CLAMPED", "%s for package %s clamped to 0", name, p.PackageID))
		}
		*amount = v
	}

	raise("Base salary", &p.BaseSalary)
	if props.IncludeRetirement {
		raise("Retirement funds", &p.RetirementFunds)
	}
	invalidate(p)
	return msgs
}
