package assessment

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/collector"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/resilience"
)

// ErrUnknownPersona is returned for a persona name with no profile.
var ErrUnknownPersona = errors.New("unknown persona")

// SimulationRequest asks for one persona run.
type SimulationRequest struct {
	Persona string `json:"persona"`
	Mode    int    `json:"mode"`
	Seed    string `json:"seed"`
}

// SimulationResult is the outcome of one request in a batch.
type SimulationResult struct {
	Index   int           `json:"index"`
	Persona string        `json:"persona"`
	Run     *database.Run `json:"run,omitempty"`
	Err     error         `json:"-"`
}

// Simulate runs a full assessment answered by a built-in persona.
func (s *Service) Simulate(ctx context.Context, req SimulationRequest) (*database.Run, error) {
	p, ok := collector.LookupPersona(req.Persona)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPersona, req.Persona)
	}
	return s.SimulateWith(ctx, collector.NewPersonaCollector(p, nil), req.Mode, req.Seed)
}

// SimulateWith creates a run, collects its answers from col with retries and
// submits them. A collector whose retries keep running out is cut off by
// its circuit breaker for a while.
func (s *Service) SimulateWith(ctx context.Context, col collector.Collector, mode int, seed string) (*database.Run, error) {
	run, err := s.CreateRun(ctx, RunRequest{Mode: mode, Seed: seed, Source: col.Name()})
	if err != nil {
		return nil, err
	}

	req := collector.Request{RunID: run.ID, Seed: run.Seed, Scenarios: s.Scenarios(run.ScenarioIDs)}

	cfg := s.retry
	cfg.OnAttempt = func(attempt int, err error) {
		s.metrics.RecordCollectorAttempt(col.Name(), err)
		s.logger.CollectorLogger(col.Name(), run.ID, attempt, err)
	}

	var answers []analysis.Response
	err = s.breakers.Get(col.Name()).Call(func() error {
		return resilience.RetryWithConfig(ctx, cfg, func(ctx context.Context) error {
			var err error
			answers, err = col.Collect(ctx, req)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("collect answers for run %s: %w", run.ID, err)
	}

	completed, err := s.SubmitResponses(ctx, run.ID, answers)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRun("simulated")
	return completed, nil
}

// SimulateBatch runs the requests with bounded concurrency. Results come
// back in request order; a failed request carries its error and does not
// stop the others.
func (s *Service) SimulateBatch(ctx context.Context, reqs []SimulationRequest) []SimulationResult {
	results := make([]SimulationResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			run, err := s.Simulate(ctx, req)
			results[i] = SimulationResult{Index: i, Persona: req.Persona, Run: run, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
