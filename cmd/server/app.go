package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/config"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/distribution"
	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/function-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/function-o-meter/internal/resilience"
	"github.com/ZanzyTHEbar/function-o-meter/internal/sampler"
)

// app is the wired object graph shared by serve and simulate.
type app struct {
	cfg          *config.Config
	logger       *monitoring.Logger
	metrics      *monitoring.Metrics
	db           *database.DB
	store        *database.Repository
	assessment   *assessment.Service
	distribution *distribution.Service
}

func loadConfig(cmd *cobra.Command, cfgPath string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSampler builds the corpus and checks it can fill every mode. Any
// failure here is fatal.
func newSampler(cfg *config.Config) (*sampler.Sampler, error) {
	c, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return nil, errors.NewConfigurationError("load corpus", err)
	}
	smp, err := sampler.New(c)
	if err != nil {
		return nil, errors.NewConfigurationError("corpus cannot serve every mode", err)
	}
	return smp, nil
}

func newApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := monitoring.NewLoggerWithWriter(logOut, cfg.LogLevel)

	smp, err := newSampler(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		return nil, errors.WrapError(err, "open run store in %s", cfg.DataDir)
	}
	repo := database.NewRepository(db)

	metrics := monitoring.NewMetrics()
	dist := distribution.NewService(repo, cfg.CacheTTL)
	svc := assessment.NewService(smp, repo,
		assessment.WithMetrics(metrics),
		assessment.WithLogger(logger),
		assessment.WithInvalidator(dist),
		assessment.WithRetryConfig(resilience.FastRetryPolicy.WithMaxAttempts(cfg.CollectorMaxAttempts)),
		assessment.WithCircuitBreaker(resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.BreakerThreshold,
			RecoveryTimeout:  cfg.BreakerCooldown,
		}),
		assessment.WithConcurrency(cfg.SimulationConcurrency),
	)

	return &app{
		cfg:          cfg,
		logger:       logger,
		metrics:      metrics,
		db:           db,
		store:        repo,
		assessment:   svc,
		distribution: dist,
	}, nil
}

// healthChecks puts run counts and pool figures on /health.
func (a *app) healthChecks() []monitoring.HealthCheck {
	return []monitoring.HealthCheck{{
		Name: "store",
		Check: func(ctx context.Context) (interface{}, error) {
			stats, err := a.store.Stats(ctx)
			return stats, err
		},
	}}
}

func (a *app) Close() {
	errors.SafeClose(a.db, "database")
}
