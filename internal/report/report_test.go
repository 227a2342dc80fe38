package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/insurance"
	"github.com/raimundomartins/rendimentos/internal/salary"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/telemetry"
)

const batch = `name,base,meal_mode,meal_daily,travel,travel_imputed,retirement,married,single_earner,dependents
Ana,800,cash,,,,,false,false,0
Bruno,800,cash,,,,,false,false,0
Carla,1270,card,,,,,false,false,0
Duarte,2364,card,,,,,false,false,0
Eva,1000,voucher,,,,,false,false,0
`

func newGenerator(t *testing.T, year int) (*Generator, *telemetry.Metrics) {
	t.Helper()
	tables, err := taxtable.NewRegistry("", zap.NewNop())
	require.NoError(t, err)
	metrics := telemetry.NewMetrics(prometheus.NewRegistry(), "")
	return &Generator{
		Tables:  tables,
		Rates:   salary.DefaultRates(),
		Policy:  insurance.NewPolicy(0.0055, 5),
		Year:    year,
		Logger:  zap.NewNop(),
		Metrics: metrics,
	}, metrics
}

func TestReadRows(t *testing.T) {
	rows, err := Read(strings.NewReader(batch))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Row{Name: "Carla", Base: 1270, MealMode: "card"}, rows[2])

	_, err = Read(strings.NewReader("name,base\n"))
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestComputeBatch(t *testing.T) {
	g, metrics := newGenerator(t, 2022)
	rows, err := Read(strings.NewReader(batch))
	require.NoError(t, err)

	res, err := g.Compute(context.Background(), rows)
	require.NoError(t, err)

	require.Len(t, res.Lines, 5)
	for i, row := range rows {
		assert.Equal(t, row.Name, res.Lines[i].Name, "lines keep input order")
	}
	assert.NotEmpty(t, res.Lines[0].CompanyCost)
	assert.Empty(t, res.Lines[0].Error)

	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, res.Lines[4].Error, "voucher")
	assert.Empty(t, res.Lines[4].CompanyCost)

	// The failing row is left out of the group policy.
	assert.Equal(t, 4, res.Quote.Workers)
	assert.InDelta(t, 79277.60, res.Quote.Capital.Value(), 0.0049)
	assert.InDelta(t, 588.24, res.Quote.Premiums.Value(), 0.0049)

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.ReportRows.WithLabelValues("computed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReportRows.WithLabelValues("failed")))
}

func TestReferencePackageLine(t *testing.T) {
	g, _ := newGenerator(t, 2022)
	res, err := g.Compute(context.Background(), []Row{{Name: "Ref", Base: 1000, SingleEarner: true}})
	require.NoError(t, err)

	l := res.Lines[0]
	assert.Equal(t, "14000.00", l.GrossYearly)
	assert.Equal(t, "777.00", l.NetTypicalMonthly)
	assert.Equal(t, "10878.00", l.NetYearlyWithheld)
	assert.Equal(t, "1671.22", l.AnnualIRS)
	assert.Equal(t, "10788.78", l.NetYearlyReal)
}

func TestComputeUnknownYear(t *testing.T) {
	g, _ := newGenerator(t, 1999)
	_, err := g.Compute(context.Background(), []Row{{Name: "x", Base: 1000}})
	assert.ErrorIs(t, err, taxtable.ErrYearNotSupported)
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Line{{Name: "Ana", CompanyCost: "1.00"}, {Name: "Eva", Error: "bad"}}))

	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, out, 3)
	assert.Equal(t, "name,company_cost,work_insurance,gross_yearly,net_typical_monthly,net_yearly_withheld,net_yearly_real,annual_irs,settlement,error", out[0])
	assert.Equal(t, "Ana,1.00,,,,,,,,", out[1])
	assert.Equal(t, "Eva,,,,,,,,,bad", out[2])
}
