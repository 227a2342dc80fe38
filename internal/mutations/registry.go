package mutations

import "sort"

type Registry struct {
	handlers map[string]MutationHandler
}

func NewRegistry(env *Env) *Registry {
	return &Registry{handlers: map[string]MutationHandler{
		"create_salary_package": &CreatePackageHandler{env: env},
		"set_base_salary":       &SetBaseSalaryHandler{env: env},
		"set_meal_allowance":    &SetMealAllowanceHandler{env: env},
		"set_travel_expenses":   &SetTravelExpensesHandler{env: env},
		"set_retirement_funds":  &SetRetirementFundsHandler{env: env},
		"apply_salary_raise":    &ApplyRaiseHandler{env: env},
		"calculate_payroll":     &CalculatePayrollHandler{env: env},
		"solve_gross_for_net":   &SolveGrossForNetHandler{env: env},
	}}
}

func (r *Registry) Get(name string) (MutationHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
