package mutations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
)

type embeddedYears struct{ err error }

func (e embeddedYears) Year(_ context.Context, year int) (*taxtable.Year, error) {
	if e.err != nil {
		return nil, e.err
	}
	return taxtable.Embedded(year)
}

func newTestRegistry(src YearSource) *Registry {
	return NewRegistry(NewEnv(src, salary.DefaultRates()))
}

func mut(name, props string) *model.Mutation {
	return &model.Mutation{MutationID: name, MutationDefinitionName: name, MutationProperties: []byte(props)}
}

func packageState() *model.Situation {
	return &model.Situation{SalaryPackage: &model.SalaryPackage{
		PackageID:     "p-1",
		EmployeeName:  "Jane",
		Year:          2022,
		Family:        model.Family{SingleEarner: true},
		MealAllowance: model.MealAllowance{Mode: "none"},
	}}
}

func run(t *testing.T, r *Registry, state *model.Situation, m *model.Mutation) []model.CalculationMessage {
	t.Helper()
	h, ok := r.Get(m.MutationDefinitionName)
	require.True(t, ok, "handler %s", m.MutationDefinitionName)
	if msgs := h.Validate(context.Background(), state, m); len(msgs) > 0 {
		return msgs
	}
	return h.Apply(context.Background(), state, m)
}

func codes(msgs []model.CalculationMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Code
	}
	return out
}

func TestRegistryNames(t *testing.T) {
	r := newTestRegistry(embeddedYears{})
	assert.Equal(t, []string{
		"apply_salary_raise",
		"calculate_payroll",
		"create_salary_package",
		"set_base_salary",
		"set_meal_allowance",
		"set_retirement_funds",
		"set_travel_expenses",
		"solve_gross_for_net",
	}, r.Names())
}

func TestCreatePackageValidation(t *testing.T) {
	r := newTestRegistry(embeddedYears{})
	tests := []struct {
		name  string
		props string
		want  string
	}{
		{"blank name", `{"package_id": "p", "employee_name": "  ", "year": 2022}`, "INVALID_NAME"},
		{"missing id", `{"employee_name": "Jane", "year": 2022}`, "INVALID_PROPERTIES"},
		{"negative dependents", `{"package_id": "p", "employee_name": "Jane", "year": 2022, "dependents": -1}`, "INVALID_PROPERTIES"},
		{"unknown year", `{"package_id": "p", "employee_name": "Jane", "year": 2019}`, "YEAR_NOT_SUPPORTED"},
		{"not json", `{`, "INVALID_PROPERTIES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := run(t, r, &model.Situation{}, mut("create_salary_package", tt.props))
			require.Len(t, msgs, 1)
			assert.Equal(t, model.LevelCritical, msgs[0].Level)
			assert.Equal(t, tt.want, msgs[0].Code)
		})
	}
}

func TestTablesUnavailable(t *testing.T) {
	r := newTestRegistry(embeddedYears{err: errors.New("connection refused")})
	msgs := run(t, r, &model.Situation{}, mut("create_salary_package", `{"package_id": "p", "employee_name": "Jane", "year": 2022}`))
	assert.Equal(t, []string{"TAX_TABLES_UNAVAILABLE"}, codes(msgs))
}

func TestHandlersRequirePackage(t *testing.T) {
	r := newTestRegistry(embeddedYears{})
	for _, name := range r.Names() {
		if name == "create_salary_package" {
			continue
		}
		msgs := run(t, r, &model.Situation{}, mut(name, `{}`))
		assert.Equal(t, []string{"PACKAGE_NOT_FOUND"}, codes(msgs), name)
	}
}

func TestSetBaseSalary(t *testing.T) {
	r := newTestRegistry(embeddedYears{})

	state := packageState()
	assert.Empty(t, run(t, r, state, mut("set_base_salary", `{"monthly": 1000}`)))
	assert.Equal(t, 1000.0, state.SalaryPackage.BaseSalary)

	state = packageState()
	assert.Empty(t, run(t, r, state, mut("set_base_salary", `{"company_cost": 17465}`)))
	assert.InDelta(t, 1000, state.SalaryPackage.BaseSalary, 1e-9)

	for _, props := range []string{`{}`, `{"monthly": 1000, "company_cost": 17465}`} {
		msgs := run(t, r, packageState(), mut("set_base_salary", props))
		assert.Equal(t, []string{"INVALID_PROPERTIES"}, codes(msgs), props)
	}

	msgs := run(t, r, packageState(), mut("set_base_salary", `{"monthly": 600}`))
	assert.Equal(t, []string{"BELOW_MINIMUM_WAGE"}, codes(msgs))
	assert.Equal(t, model.LevelWarning, msgs[0].Level)
}

func TestSetMealAllowance(t *testing.T) {
	r := newTestRegistry(embeddedYears{})

	state := packageState()
	assert.Empty(t, run(t, r, state, mut("set_meal_allowance", `{"mode": "card"}`)))
	assert.Equal(t, model.MealAllowance{Mode: "card", Daily: 7.63}, state.SalaryPackage.MealAllowance)

	msgs := run(t, r, state, mut("set_meal_allowance", `{"mode": "cash", "daily": 6}`))
	assert.Equal(t, []string{"MEAL_ABOVE_EXEMPT_LIMIT"}, codes(msgs))
	assert.Equal(t, 6.0, state.SalaryPackage.MealAllowance.Daily)

	msgs = run(t, r, state, mut("set_meal_allowance", `{"mode": "voucher"}`))
	assert.Equal(t, []string{"INVALID_PROPERTIES"}, codes(msgs))
}

func TestApplySalaryRaise(t *testing.T) {
	r := newTestRegistry(embeddedYears{})

	state := packageState()
	state.SalaryPackage.BaseSalary = 1000
	state.SalaryPackage.RetirementFunds = 100
	state.SalaryPackage.Payroll = &model.Payroll{}

	assert.Empty(t, run(t, r, state, mut("apply_salary_raise", `{"percentage": 0.05}`)))
	assert.InDelta(t, 1050, state.SalaryPackage.BaseSalary, 1e-9)
	assert.Equal(t, 100.0, state.SalaryPackage.RetirementFunds)
	assert.Nil(t, state.SalaryPackage.Payroll, "results are dropped when headings change")

	assert.Empty(t, run(t, r, state, mut("apply_salary_raise", `{"percentage": 0.1, "include_retirement": true}`)))
	assert.InDelta(t, 110, state.SalaryPackage.RetirementFunds, 1e-9)

	msgs := run(t, r, state, mut("apply_salary_raise", `{"percentage": -2}`))
	assert.Equal(t, []string{"NEGATIVE_SALARY_CLAMPED"}, codes(msgs))
	assert.Zero(t, state.SalaryPackage.BaseSalary)

	msgs = run(t, r, state, mut("apply_salary_raise", `{"percentage": 11}`))
	assert.Equal(t, []string{"INVALID_PROPERTIES"}, codes(msgs))
}

func TestCalculatePayrollNeedsBaseSalary(t *testing.T) {
	r := newTestRegistry(embeddedYears{})
	msgs := run(t, r, packageState(), mut("calculate_payroll", `{}`))
	assert.Equal(t, []string{"NO_BASE_SALARY"}, codes(msgs))
}

func TestSolveGrossForNet(t *testing.T) {
	r := newTestRegistry(embeddedYears{})

	state := packageState()
	state.SalaryPackage.BaseSalary = 900
	assert.Empty(t, run(t, r, state, mut("solve_gross_for_net", `{"monthly_net": 777}`)))

	g := state.SalaryPackage.GrossForNet
	require.NotNil(t, g)
	assert.Equal(t, "777", g.MonthlyNet.String())
	assert.NotEmpty(t, g.Withholding)
	assert.InDelta(t, 1009.66, g.Exact.InexactFloat64(), 0.001)
	assert.Equal(t, 900.0, state.SalaryPackage.BaseSalary, "apply is off")

	assert.Empty(t, run(t, r, state, mut("solve_gross_for_net", `{"monthly_net": 777, "apply": true}`)))
	assert.InDelta(t, 1009.6558, state.SalaryPackage.BaseSalary, 0.001)
	assert.NotNil(t, state.SalaryPackage.GrossForNet)
}
