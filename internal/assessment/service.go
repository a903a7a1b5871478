// Package assessment orchestrates runs: sampling scenarios, scoring the
// answers, deriving types and persisting the result.
package assessment

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/function-o-meter/internal/resilience"
	"github.com/ZanzyTHEbar/function-o-meter/internal/sampler"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

// SourceUser marks runs answered by a person.
const SourceUser = "user"

// RunStore persists runs.
type RunStore interface {
	Create(ctx context.Context, run *database.Run) error
	Get(ctx context.Context, id string) (*database.Run, error)
	Complete(ctx context.Context, run *database.Run) error
	List(ctx context.Context, limit int) ([]*database.Run, error)
	Delete(ctx context.Context, id string) error
}

// Invalidator is told when the set of completed runs changes.
type Invalidator interface {
	Invalidate()
}

// Analysis is the combined scoring and derivation of one response set.
type Analysis struct {
	Scores   analysis.FunctionScores `json:"scores"`
	Types    typology.Types          `json:"types"`
	Counts   map[string]int          `json:"counts"`
	Resolved int                     `json:"resolved"`
	Ignored  int                     `json:"ignored"`
}

// RunRequest starts a run.
type RunRequest struct {
	Mode        int
	Seed        string
	ExplicitIDs []string
	Source      string
}

// Service handles assessment operations
type Service struct {
	sampler     *sampler.Sampler
	analyzer    *analysis.Analyzer
	store       RunStore
	invalidator Invalidator
	metrics     *monitoring.Metrics
	logger      *monitoring.Logger
	retry       resilience.RetryConfig
	breakers    *resilience.CircuitBreakerRegistry
	concurrency int
	newSeed     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records to m instead of a private registry.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger logs through l.
func WithLogger(l *monitoring.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithInvalidator notifies inv whenever a run completes or is deleted.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

// WithRetryConfig sets how collector calls are retried.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(s *Service) { s.retry = cfg }
}

// WithCircuitBreaker sets when a failing collector is cut off.
func WithCircuitBreaker(cfg resilience.CircuitBreakerConfig) Option {
	return func(s *Service) { s.breakers = resilience.NewCircuitBreakerRegistry(cfg) }
}

// WithConcurrency bounds simulations running at once in a batch.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithSeedGenerator replaces the UUID seeds given to runs created without one.
func WithSeedGenerator(f func() string) Option {
	return func(s *Service) { s.newSeed = f }
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

// NewService creates a service over a validated sampler and a run store.
func NewService(smp *sampler.Sampler, store RunStore, opts ...Option) *Service {
	s := &Service{
		sampler:     smp,
		analyzer:    analysis.NewAnalyzer(smp.Corpus()),
		store:       store,
		invalidator: noopInvalidator{},
		retry:       resilience.FastRetryPolicy.Config,
		breakers:    resilience.NewCircuitBreakerRegistry(resilience.DefaultCircuitBreakerConfig()),
		concurrency: 4,
		newSeed:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = monitoring.NewMetrics()
	}
	if s.logger == nil {
		s.logger = monitoring.NewLoggerWithWriter(os.Stdout, "info")
	}
	return s
}

// CollectorStats reports the breaker of every collector used so far.
func (s *Service) CollectorStats() []resilience.BreakerStats { return s.breakers.Stats() }

// Corpus returns the corpus runs are drawn from.
func (s *Service) Corpus() *corpus.Corpus { return s.sampler.Corpus() }

// Sample selects scenarios for mode and seed, preferring explicitIDs when
// they form a valid selection.
func (s *Service) Sample(mode int, seed string, explicitIDs []string) (sampler.Selection, error) {
	start := time.Now()
	sel, err := s.sampler.SelectWithExplicit(mode, seed, explicitIDs)
	if err != nil {
		return sampler.Selection{}, err
	}
	elapsed := time.Since(start)

	s.metrics.RecordSample(mode, string(sel.Source), elapsed)
	s.logger.SampleLogger(mode, sampler.HashSeed(seed), string(sel.Source), elapsed)
	return sel, nil
}

// Scenarios resolves ids in order, skipping unknown ones.
func (s *Service) Scenarios(ids []string) []corpus.Scenario {
	c := s.sampler.Corpus()
	out := make([]corpus.Scenario, 0, len(ids))
	for _, id := range ids {
		if sc, ok := c.Scenario(id); ok {
			out = append(out, sc)
		}
	}
	return out
}

// Score aggregates responses into function scores.
func (s *Service) Score(responses []analysis.Response) analysis.ScoreResult {
	result := s.analyzer.Score(responses)
	s.metrics.RecordScoring(result.Resolved, result.Ignored)
	return result
}

// Derive computes all three type codes for scores.
func (s *Service) Derive(scores analysis.FunctionScores) typology.Types {
	types := typology.Derive(scores)
	for _, scheme := range typology.Schemes {
		s.metrics.RecordDerivation(string(scheme), typology.UnresolvedLetters(types.Get(scheme)))
	}
	return types
}

// Analyze scores responses and derives types in one step.
func (s *Service) Analyze(responses []analysis.Response) Analysis {
	result := s.Score(responses)
	return Analysis{
		Scores:   result.Scores,
		Types:    s.Derive(result.Scores),
		Counts:   result.Counts,
		Resolved: result.Resolved,
		Ignored:  result.Ignored,
	}
}

// CreateRun samples scenarios and stores a pending run. An empty seed gets
// a fresh UUID; an empty source means the run is answered by a person.
func (s *Service) CreateRun(ctx context.Context, req RunRequest) (*database.Run, error) {
	seed := req.Seed
	if strings.TrimSpace(seed) == "" {
		seed = s.newSeed()
	}
	source := req.Source
	if source == "" {
		source = SourceUser
	}

	sel, err := s.Sample(req.Mode, seed, req.ExplicitIDs)
	if err != nil {
		return nil, err
	}

	run := database.NewRun(sel.Mode, sel.Seed, source, string(sel.Source), sel.ScenarioIDs)
	if err := s.store.Create(ctx, run); err != nil {
		return nil, err
	}

	s.metrics.RecordRun("created")
	s.logger.RunLogger("created", run.ID, run.Mode, string(run.Status))
	return run, nil
}

// SubmitResponses scores the answers of a pending run and completes it.
// Only answers to the run's own scenarios count; a completed run is never
// rescored.
func (s *Service) SubmitResponses(ctx context.Context, runID string, responses []analysis.Response) (*database.Run, error) {
	run, err := s.store.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.IsCompleted() {
		return nil, fmt.Errorf("%w: %s", database.ErrRunCompleted, runID)
	}

	result := s.analyzer.AnalyzeRun(run.ScenarioIDs, responses)
	s.metrics.RecordScoring(result.Resolved, result.Ignored)

	run.Responses = result.Accepted
	run.Scores = result.Scores
	run.Types = s.Derive(result.Scores)
	run.Resolved = result.Resolved
	run.Ignored = result.Ignored

	if err := s.store.Complete(ctx, run); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()

	if run.Scores.IsZero() {
		s.metrics.RecordRun("empty")
	} else {
		s.metrics.RecordScores(run.Scores.Map())
	}
	s.metrics.RecordRun("completed")
	s.logger.RunLogger("completed", run.ID, run.Mode, string(run.Status))
	s.logger.DerivationLogger(run.ID, run.Types.StackType, run.Types.AxisType, run.Types.MyersType)
	return run, nil
}

// GetRun loads one run.
func (s *Service) GetRun(ctx context.Context, id string) (*database.Run, error) {
	return s.store.Get(ctx, id)
}

// ListRuns returns the most recent runs first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*database.Run, error) {
	return s.store.List(ctx, limit)
}

// DeleteRun removes a run and its answers.
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate()

	s.metrics.RecordRun("deleted")
	s.logger.RunLogger("deleted", id, 0, "deleted")
	return nil
}
