package main

import (
	"context"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/config"
	"github.com/raimundomartins/rendimentos/internal/engine"
	"github.com/raimundomartins/rendimentos/internal/handler"
	"github.com/raimundomartins/rendimentos/internal/logger"
	"github.com/raimundomartins/rendimentos/internal/mutations"
	"github.com/raimundomartins/rendimentos/internal/taxtable"
	"github.com/raimundomartins/rendimentos/internal/telemetry"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			logger.New,
			newPrometheusRegistry,
			func(reg *prometheus.Registry) prometheus.Registerer { return reg },
			func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
			func(reg prometheus.Registerer, cfg config.Config) *telemetry.Metrics {
				return telemetry.NewMetrics(reg, cfg.MetricsNamespace)
			},
			func(cfg config.Config, log *zap.Logger) (*taxtable.Registry, error) {
				return taxtable.NewRegistry(cfg.TaxTableRegistry, log)
			},
			func(tables *taxtable.Registry, cfg config.Config) *mutations.Env {
				return mutations.NewEnv(tables, cfg.Rates)
			},
			mutations.NewRegistry,
			engine.New,
			handler.New,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(prefetchDefaultYear, startServer),
	).Run()
}

func newPrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// prefetchDefaultYear warms the registry so the first request does not pay
// for a remote lookup.
func prefetchDefaultYear(lc fx.Lifecycle, cfg config.Config, tables *taxtable.Registry, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for year, err := range tables.Prefetch(ctx, []int{cfg.DefaultYear}) {
				log.Warn("default tax year unavailable", zap.Int("year", year), zap.Error(err))
			}
			log.Info("tax tables ready", zap.Ints("years", tables.Years()))
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, h *handler.Handler, log *zap.Logger) {
	srv := &fasthttp.Server{
		Handler: h.Route,
		Name:    "payroll-engine",
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", ":"+cfg.Port)
			if err != nil {
				return err
			}
			log.Info("payroll engine starting", zap.String("port", cfg.Port))
			go func() {
				if err := srv.Serve(ln); err != nil {
					log.Error("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.ShutdownWithContext(ctx)
		},
	})
}
