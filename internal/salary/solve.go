package salary

import (
	"github.com/raimundomartins/rendimentos/internal/units"
)

// GrossSolution lists base salaries that yield a monthly net target.
type GrossSolution struct {
	// Withholding holds one candidate per matching withholding row, ascending.
	Withholding []units.Money
	// Exact is the base salary whose bracket-exact yearly net equals 14 payments of the target.
	Exact units.Money
}

// SolveGrossForNet inverts the base salary alone; other headings are ignored.
func SolveGrossForNet(ctx Context, monthlyNet units.Money) (GrossSolution, error) {
	candidates, err := ctx.Year.Withholding.GrossCandidates(monthlyNet, ctx.Rates.WorkerTSU, ctx.Family, ctx.Year.MinimumWage)
	if err != nil {
		return GrossSolution{}, err
	}
	yearly, err := ctx.Year.Brackets.GrossForNet(units.NewQuantity(monthlyNet, units.M14), ctx.Rates.WorkerTSU)
	if err != nil {
		return GrossSolution{}, err
	}
	return GrossSolution{Withholding: candidates, Exact: yearly.In(units.M14).Value()}, nil
}
