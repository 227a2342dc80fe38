// Package report computes payroll summaries for a CSV batch of salary packages.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/insurance"
	"github.com/raimundomartins/rendimentos/internal/irs"
	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/telemetry"
	"github.com/raimundomartins/rendimentos/internal/units"
)

var ErrEmptyBatch = errors.New("empty_batch")

// Row is one input package. Amounts are monthly.
type Row struct {
	Name          string  `csv:"name"`
	Base          float64 `csv:"base"`
	MealMode      string  `csv:"meal_mode"`
	MealDaily     float64 `csv:"meal_daily"`
	Travel        float64 `csv:"travel"`
	TravelImputed bool    `csv:"travel_imputed"`
	Retirement    float64 `csv:"retirement"`
	Married       bool    `csv:"married"`
	SingleEarner  bool    `csv:"single_earner"`
	Dependents    int     `csv:"dependents"`
}

// Line is one output row; amounts are yearly unless named monthly. A row that
// could not be computed only carries its name and Error.
type Line struct {
	Name              string `csv:"name"`
	CompanyCost       string `csv:"company_cost"`
	Insurance         string `csv:"work_insurance"`
	GrossYearly       string `csv:"gross_yearly"`
	NetTypicalMonthly string `csv:"net_typical_monthly"`
	NetYearlyWithheld string `csv:"net_yearly_withheld"`
	NetYearlyReal     string `csv:"net_yearly_real"`
	AnnualIRS         string `csv:"annual_irs"`
	Settlement        string `csv:"settlement"`
	Error             string `csv:"error"`
}

// YearSource resolves the tax tables of a year.
type YearSource interface {
	Year(ctx context.Context, year int) (*taxtable.Year, error)
}

type Generator struct {
	Tables  YearSource
	Rates   salary.Rates
	Policy  insurance.Policy
	Year    int
	Logger  *zap.Logger
	Metrics *telemetry.Metrics
}

// Result holds the lines in input order and the group insurance quote of the
// rows that succeeded.
type Result struct {
	Lines  []Line
	Quote  insurance.Quote
	Failed int
}

func Read(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}
	return rows, nil
}

func Write(w io.Writer, lines []Line) error {
	return gocsv.Marshal(lines, w)
}

// Compute evaluates every row concurrently. Row failures are reported in
// their line; only a missing tax year fails the whole batch.
func (g *Generator) Compute(ctx context.Context, rows []Row) (Result, error) {
	year, err := g.Tables.Year(ctx, g.Year)
	if err != nil {
		return Result{}, err
	}

	lines := make([]Line, len(rows))
	salaries := make([]*salary.Salary, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(i int, row Row) {
			defer wg.Done()
			s, line := g.compute(year, row)
			lines[i], salaries[i] = line, s
		}(i, row)
	}
	wg.Wait()

	res := Result{Lines: lines}
	var insured []*salary.Salary
	for i, s := range salaries {
		if s == nil {
			res.Failed++
			g.logger().Warn("row failed", zap.Int("row", i+1), zap.String("name", lines[i].Name), zap.String("error", lines[i].Error))
			g.count("failed")
			continue
		}
		insured = append(insured, s)
		g.count("computed")
	}
	res.Quote = g.Policy.Quote(insured...)
	return res, nil
}

func (g *Generator) compute(year *taxtable.Year, row Row) (*salary.Salary, Line) {
	line := Line{Name: row.Name}
	mode, err := salary.ParseMealMode(row.MealMode)
	if err != nil {
		line.Error = err.Error()
		return nil, line
	}

	ctx := salary.NewContext(year, irs.Family{Married: row.Married, SingleEarner: row.SingleEarner, Dependents: row.Dependents})
	ctx.Rates = g.Rates
	ctx.ImputeTravelExpenses = row.TravelImputed
	s := salary.New(ctx, salary.Package{
		BaseMonthly:       units.Money(row.Base),
		Meal:              mode,
		MealDaily:         units.Money(row.MealDaily),
		TravelMonthly:     units.Money(row.Travel),
		RetirementMonthly: units.Money(row.Retirement),
	})
	sum, err := s.Summary()
	if err != nil {
		line.Error = err.Error()
		return nil, line
	}

	line.CompanyCost = cents(sum.CompanyCost)
	line.Insurance = cents(sum.Insurance)
	line.GrossYearly = cents(sum.GrossYearly)
	line.NetTypicalMonthly = cents(sum.NetTypicalMonthly)
	line.NetYearlyWithheld = cents(sum.NetYearlyWithheld)
	line.NetYearlyReal = cents(sum.NetYearlyReal)
	line.AnnualIRS = cents(sum.AnnualIRS)
	line.Settlement = cents(sum.Settlement())
	return s, line
}

func cents(m units.Money) string {
	return model.Cents(m).StringFixed(2)
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Generator) count(result string) {
	if g.Metrics != nil {
		g.Metrics.ReportRows.WithLabelValues(result).Inc()
	}
}
