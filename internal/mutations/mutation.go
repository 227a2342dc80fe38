package mutations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/units"
)

// MutationHandler defines the contract for all mutation implementations.
// Validate checks business rules without touching state; Apply changes it.
type MutationHandler interface {
	Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage
	Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage
}

// YearSource resolves the tax tables of a year.
type YearSource interface {
	Year(ctx context.Context, year int) (*taxtable.Year, error)
}

// Env is shared by every handler of a registry.
type Env struct {
	Tables    YearSource
	Rates     salary.Rates
	validator *validator.Validate
}

func NewEnv(tables YearSource, rates salary.Rates) *Env {
	return &Env{Tables: tables, Rates: rates, validator: validator.New(validator.WithRequiredStructEnabled())}
}

func critical(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelCritical, Code: code, Message: fmt.Sprintf(format, args...)}
}

func warning(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// decode unmarshals and validates mutation properties into props.
func (e *Env) decode(mutation *model.Mutation, props any) []model.CalculationMessage {
	raw := mutation.MutationProperties
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, props); err != nil {
		return []model.CalculationMessage{critical("INVALID_PROPERTIES", "Mutation properties are not valid JSON: %v", err)}
	}
	if err := e.validator.Struct(props); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []model.CalculationMessage{critical("INVALID_PROPERTIES", "%v", err)}
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return []model.CalculationMessage{critical("INVALID_PROPERTIES", "Invalid mutation properties: %s", strings.Join(fields, ", "))}
	}
	return nil
}

func requirePackage(state *model.Situation) []model.CalculationMessage {
	if state.SalaryPackage == nil {
		return []model.CalculationMessage{critical("PACKAGE_NOT_FOUND", "No salary package exists")}
	}
	return nil
}

func (e *Env) year(ctx context.Context, year int) (*taxtable.Year, []model.CalculationMessage) {
	y, err := e.Tables.Year(ctx, year)
	if errors.Is(err, taxtable.ErrYearNotSupported) {
		return nil, []model.CalculationMessage{critical("YEAR_NOT_SUPPORTED", "No tax tables for year %d", year)}
	}
	if err != nil {
		return nil, []model.CalculationMessage{critical("TAX_TABLES_UNAVAILABLE", "Tax tables for year %d could not be loaded: %v", year, err)}
	}
	return y, nil
}

func (e *Env) context(ctx context.Context, p *model.SalaryPackage) (salary.Context, []model.CalculationMessage) {
	y, msgs := e.year(ctx, p.Year)
	if msgs != nil {
		return salary.Context{}, msgs
	}
	c := salary.NewContext(y, irs.Family{
		Married:      p.Family.Married,
		SingleEarner: p.Family.SingleEarner,
		Dependents:   p.Family.Dependents,
	})
	c.Rates = e.Rates
	c.ImputeTravelExpenses = p.TravelImputed
	return c, nil
}

func (e *Env) salary(ctx context.Context, p *model.SalaryPackage) (*salary.Salary, []model.CalculationMessage) {
	c, msgs := e.context(ctx, p)
	if msgs != nil {
		return nil, msgs
	}
	mode, err := salary.ParseMealMode(p.MealAllowance.Mode)
	if err != nil {
		return nil, []model.CalculationMessage{critical("INVALID_MEAL_MODE", "%v", err)}
	}
	return salary.New(c, salary.Package{
		BaseMonthly:       units.Money(p.BaseSalary),
		Meal:              mode,
		MealDaily:         units.Money(p.MealAllowance.Daily),
		TravelMonthly:     units.Money(p.TravelExpenses),
		RetirementMonthly: units.Money(p.RetirementFunds),
	}), nil
}

// invalidate drops results computed from the previous headings.
func invalidate(p *model.SalaryPackage) {
	p.Payroll = nil
	p.GrossForNet = nil
}
