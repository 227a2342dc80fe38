package mutations

import (
	"context"

	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/units"
)

type setBaseSalaryProps struct {
	Monthly     *float64 `json:"monthly" validate:"omitempty,gte=0"`
	CompanyCost *float64 `json:"company_cost" validate:"omitempty,gte=0"`
}

// SetBaseSalaryHandler sets the monthly base salary, paid 14 times a year,
// either directly or as the salary whose yearly company cost is the given amount.
type SetBaseSalaryHandler struct {
	env *Env
}

func (h *SetBaseSalaryHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props setBaseSalaryProps
	if msgs := h.env.decode(mutation, &props); msgs != nil {
		return msgs
	}
	if (props.Monthly == nil) == (props.CompanyCost == nil) {
		return []model.CalculationMessage{critical("INVALID_PROPERTIES", "Exactly one of monthly or company_cost is required")}
	}
	return nil
}

func (h *SetBaseSalaryHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setBaseSalaryProps
	h.env.decode(mutation, &props)
	p := state.SalaryPackage

	c, msgs := h.env.context(ctx, p)
	if msgs != nil {
		return msgs
	}
	var monthly units.Money
	if props.Monthly != nil {
		monthly = units.Money(*props.Monthly)
	} else {
		monthly = salary.BaseSalaryForCost(c, units.PerYear(units.Money(*props.CompanyCost))).Monthly
	}
	p.BaseSalary = monthly.Value()
	invalidate(p)

	if monthly > 0 && monthly < c.Year.MinimumWage {
		return []model.CalculationMessage{warning("BELOW_MINIMUM_WAGE", "Base salary %v is below the %d minimum wage of %v", monthly, p.Year, c.Year.MinimumWage)}
	}
	return nil
}

type setMealAllowanceProps struct {
	Mode  string  `json:"mode" validate:"oneof=none cash card"`
	Daily float64 `json:"daily" validate:"gte=0"`
}

// SetMealAllowanceHandler sets the meal allowance. A zero daily amount pays
// the non-taxable ceiling of the mode.
type SetMealAllowanceHandler struct {
	env *Env
}

func (h *SetMealAllowanceHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props setMealAllowanceProps
	return h.env.decode(mutation, &props)
}

func (h *SetMealAllowanceHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setMealAllowanceProps
	h.env.decode(mutation, &props)
	p := state.SalaryPackage

	c, msgs := h.env.context(ctx, p)
	if msgs != nil {
		return msgs
	}
	mode, _ := salary.ParseMealMode(props.Mode)
	meal := salary.NewMealAllowance(c, mode, units.Money(props.Daily))

	p.MealAllowance = model.MealAllowance{Mode: mode.String(), Daily: meal.Daily.Value()}
	invalidate(p)

	if meal.Daily > meal.Ceiling && mode != salary.MealNone {
		return []model.CalculationMessage{warning("MEAL_ABOVE_EXEMPT_LIMIT",
			"Daily meal allowance %v exceeds the %s exemption of %v; the excess is taxed", meal.Daily, mode, meal.Ceiling)}
	}
	return nil
}

type setTravelExpensesProps struct {
	Monthly         float64 `json:"monthly" validate:"gte=0"`
	ImputedToClient bool    `json:"imputed_to_client"`
}

type SetTravelExpensesHandler struct {
	env *Env
}

func (h *SetTravelExpensesHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props setTravelExpensesProps
	return h.env.decode(mutation, &props)
}

func (h *SetTravelExpensesHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setTravelExpensesProps
	h.env.decode(mutation, &props)

	state.SalaryPackage.TravelExpenses = props.Monthly
	state.SalaryPackage.TravelImputed = props.ImputedToClient
	invalidate(state.SalaryPackage)
	return nil
}

type setRetirementFundsProps struct {
	Monthly float64 `json:"monthly" validate:"gte=0"`
}

type SetRetirementFundsHandler struct {
	env *Env
}

func (h *SetRetirementFundsHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if msgs := requirePackage(state); msgs != nil {
		return msgs
	}
	var props setRetirementFundsProps
	return h.env.decode(mutation, &props)
}

func (h *SetRetirementFundsHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setRetirementFundsProps
	h.env.decode(mutation, &props)

	state.SalaryPackage.RetirementFunds = props.Monthly
	invalidate(state.SalaryPackage)
	return nil
}
