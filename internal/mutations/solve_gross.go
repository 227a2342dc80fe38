package mutations

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/units"
)

type solveGrossProps struct {
	MonthlyNet float64 `json:"monthly_net" validate:"gt=0"`
	Apply      bool    `json:"apply"`
}

// SolveGrossForNetHandler finds the base salary that pays a monthly net and,
// when asked, adopts the bracket-exact one.
type SolveGrossForNetHandler struct {
	env *Env
}

func (h *SolveGrossForNetHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props solveGrossProps
	return h.env.decode(mutation, &props)
}

func (h *SolveGrossForNetHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props solveGrossProps
	h.env.decode(mutation, &props)
	p := state.SalaryPackage

	c, msgs := h.env.context(ctx, p)
	if msgs != nil {
		return msgs
	}
	sol, err := salary.SolveGrossForNet(c, units.Money(props.MonthlyNet))
	if errors.Is(err, irs.ErrNoGrossMatch) {
		return []model.CalculationMessage{critical("NO_GROSS_MATCH", "No base salary above the minimum wage pays %.2f net", props.MonthlyNet)}
	}
	if err != nil {
		return []model.CalculationMessage{critical("CALCULATION_FAILED", "%v", err)}
	}

	candidates := make([]decimal.Decimal, len(sol.Withholding))
	for i, g := range sol.Withholding {
		candidates[i] = model.Cents(g)
	}
	if props.Apply {
		p.BaseSalary = sol.Exact.Value()
		invalidate(p)
	}
	p.GrossForNet = &model.GrossForNet{
		MonthlyNet:  model.Cents(units.Money(props.MonthlyNet)),
		Withholding: candidates,
		Exact:       model.Cents(sol.Exact),
	}
	return nil
}
