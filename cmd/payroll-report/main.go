package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/config"
	"github.com/raimundomartins/rendimentos/internal/insurance"
	"github.com/raimundomartins/rendimentos/internal/logger"
	"github.com/raimundomartins/rendimentos/internal/report"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/telemetry"
	"github.com/raimundomartins/rendimentos/internal/units"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "payroll-report:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("payroll-report", flag.ContinueOnError)
	in := fs.StringP("in", "i", "-", "input CSV (- for stdin)")
	out := fs.StringP("out", "o", "-", "output CSV (- for stdout)")
	year := fs.IntP("year", "y", cfg.DefaultYear, "tax year")
	recordCost := fs.Float64("record-cost", 5, "work accidents policy record cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := logger.Build(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tables, err := taxtable.NewRegistry(cfg.TaxTableRegistry, log)
	if err != nil {
		return err
	}

	r, err := open(*in)
	if err != nil {
		return err
	}
	defer r.Close()
	rows, err := report.Read(r)
	if err != nil {
		return err
	}

	policy := insurance.NewPolicy(cfg.Rates.WorkInsurance, units.Money(*recordCost))
	policy.Rates = cfg.Insurance
	g := &report.Generator{
		Tables:  tables,
		Rates:   cfg.Rates,
		Policy:  policy,
		Year:    *year,
		Logger:  log.Named("report"),
		Metrics: telemetry.NewMetrics(prometheus.NewRegistry(), cfg.MetricsNamespace),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	start := time.Now()
	res, err := g.Compute(ctx, rows)
	if err != nil {
		return err
	}

	w, err := create(*out)
	if err != nil {
		return err
	}
	if err := report.Write(w, res.Lines); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.Info("report written",
		zap.Int("rows", len(rows)),
		zap.Int("failed", res.Failed),
		zap.Int("insured_workers", res.Quote.Workers),
		zap.String("insured_capital", res.Quote.Capital.String()),
		zap.String("insurance_total", res.Quote.Total.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
