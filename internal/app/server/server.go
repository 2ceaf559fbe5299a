package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hrpro/internal/domain/audit"
	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
	"hrpro/internal/platform/config"
	"hrpro/internal/platform/db"
	"hrpro/internal/platform/events"
	"hrpro/internal/platform/logging"
	"hrpro/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config     config.Config
	Log        zerolog.Logger
	DB         *pgxpool.Pool
	Metrics    *metrics.Collector
	Dispatcher *events.Dispatcher
	Router     http.Handler

	kafka *events.KafkaPublisher
}

// New connects to the database, prepares the schema when configured and
// wires every service behind the router.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: logger, DB: pool, Metrics: metrics.New()}

	if err := app.prepare(ctx); err != nil {
		app.Close()
		return nil, err
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.DialKafka(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.kafka = kp
		publisher = kp
	}
	app.Dispatcher = events.NewDispatcher(publisher, 256, app.Metrics, logger)

	policy := employees.NewFlatRate(cfg.NetSalaryRate)
	trainingSvc := trainings.NewService(trainings.NewStore(pool))
	evaluationSvc := evaluations.NewService(evaluations.NewStore(pool))
	employeeSvc := employees.NewService(
		employees.NewStore(pool, cfg.EmployerName),
		trainingSvc,
		evaluationSvc,
		policy,
		cfg.VacationAllotmentDays,
		logging.Component(logger, "employees"),
	)
	employeeSvc.Observer = app.Metrics

	app.Router = NewRouter(cfg, Deps{
		Employees:   employeeSvc,
		Departments: departments.NewService(departments.NewStore(pool)),
		Recruitment: recruitment.NewService(recruitment.NewStore(pool)),
		Trainings:   trainingSvc,
		Evaluations: evaluationSvc,
		Audit:       audit.New(pool, app.Dispatcher),
		Metrics:     app.Metrics,
		Log:         logger,
		Ready:       pool.Ping,
	})
	return app, nil
}

func (a *App) prepare(ctx context.Context) error {
	if err := db.EnsureSchema(ctx, a.DB, a.Config.DBSchema); err != nil {
		return err
	}
	if a.Config.RunMigrations {
		if err := db.Migrate(ctx, a.DB, logging.Component(a.Log, "migrate")); err != nil {
			return err
		}
	}
	if a.Config.RunSeed {
		policy := employees.NewFlatRate(a.Config.NetSalaryRate)
		err := db.Seed(ctx, a.DB, db.SeedOptions{
			Demo:         !a.Config.IsProduction(),
			EmployerName: a.Config.EmployerName,
			NetSalary:    policy.Net,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Run serves HTTP and delivers events until ctx is cancelled, then shuts
// the listener down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Dispatcher.Run(gctx)
	})
	g.Go(func() error {
		a.Log.Info().Str("addr", srv.Addr).Str("env", a.Config.Environment).Msg("HR Pro API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		a.Log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if err := a.kafka.Close(); err != nil {
		a.Log.Warn().Err(err).Msg("close kafka producer")
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
