package mutations

import (
	"context"
	"strings"

	"github.com/raimundomartins/rendimentos/internal/model"
)

type createPackageProps struct {
	PackageID    string `json:"package_id" validate:"required"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Married      bool   `json:"married"`
	SingleEarner bool   `json:"single_earner"`
	Dependents   int    `json:"dependents" validate:"gte=0,lte=30"`
}

type CreatePackageHandler struct {
	env *Env
}

func (h *CreatePackageHandler) Validate(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if state.SalaryPackage != nil {
		return []model.CalculationMessage{critical("PACKAGE_ALREADY_EXISTS", "A salary package already exists")}
	}

	var props createPackageProps
	if msgs := h.env.decode(mutation, &props); msgs != nil {
		return msgs
	}
	if strings.TrimSpace(props.EmployeeName) == "" {
		return []model.CalculationMessage{critical("INVALID_NAME", "Employee name is empty or blank")}
	}
	if _, msgs := h.env.year(ctx, props.Year); msgs != nil {
		return msgs
	}
	return nil
}

func (h *CreatePackageHandler) Apply(ctx context.Context, state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props createPackageProps
	h.env.decode(mutation, &props)

	state.SalaryPackage = &model.SalaryPackage{
		PackageID:    props.PackageID,
		EmployeeName: strings.TrimSpace(props.EmployeeName),
		Year:         props.Year,
		Family: model.Family{
			Married:      props.Married,
			SingleEarner: props.SingleEarner,
			Dependents:   props.Dependents,
		},
		MealAllowance: model.MealAllowance{Mode: "none"},
	}
	return nil
}
