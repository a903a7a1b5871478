package assessment

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/collector"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/function-o-meter/internal/resilience"
)

// flakyCollector fails a fixed number of times before delegating.
type flakyCollector struct {
	failures int32
	calls    int32
	err      error
	next     collector.Collector
}

func (f *flakyCollector) Name() string { return "flaky" }

func (f *flakyCollector) Collect(ctx context.Context, req collector.Request) ([]analysis.Response, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= f.failures {
		return nil, f.err
	}
	return f.next.Collect(ctx, req)
}

func TestSimulatePersona(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Simulate(ctx, SimulationRequest{Persona: "strategist", Mode: 64, Seed: "sim"})
	require.NoError(t, err)
	b, err := f.svc.Simulate(ctx, SimulationRequest{Persona: "strategist", Mode: 64, Seed: "sim"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "persona:strategist", a.Source)
	assert.Equal(t, database.RunCompleted, a.Status)
	assert.Equal(t, 64, a.Resolved)
	assert.Zero(t, a.Ignored)
	assert.Equal(t, a.ScenarioIDs, b.ScenarioIDs)
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Types, b.Types)

	expected := `
		# HELP fometer_runs_total Run lifecycle events.
		# TYPE fometer_runs_total counter
		fometer_runs_total{event="completed"} 2
		fometer_runs_total{event="created"} 2
		fometer_runs_total{event="simulated"} 2
	`
	assert.NoError(t, testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "fometer_runs_total"))
}

func TestSimulateUnknownPersona(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Simulate(context.Background(), SimulationRequest{Persona: "ghost", Mode: 16})
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestSimulateWithRetriesCollector(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyCollector{
		failures: 2,
		err:      errors.NewCollectorError("flaky", stderrors.New("upstream unavailable")),
		next:     collector.NewFunctionCollector(corpus.Se),
	}

	run, err := f.svc.SimulateWith(context.Background(), flaky, 16, "retry")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&flaky.calls))
	assert.Equal(t, analysis.FunctionScores{Se: 40}, run.Scores)
	assert.Equal(t, "flaky", run.Source)
}

func TestSimulateWithGivesUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flaky := &flakyCollector{
		failures: 10,
		err:      errors.NewCollectorError("flaky", stderrors.New("upstream unavailable")),
		next:     collector.NewFunctionCollector(corpus.Se),
	}

	_, err := f.svc.SimulateWith(ctx, flaky, 16, "down")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryCollector, errors.ToAppError(err).Category)
	assert.Equal(t, int32(3), atomic.LoadInt32(&flaky.calls))

	runs, err := f.svc.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, database.RunPending, runs[0].Status)
}

func TestSimulateWithOpensCircuit(t *testing.T) {
	f := newFixture(t, WithCircuitBreaker(resilience.CircuitBreakerConfig{FailureThreshold: 2, RecoveryTimeout: time.Hour}))
	ctx := context.Background()
	flaky := &flakyCollector{
		failures: 100,
		err:      errors.NewCollectorError("flaky", stderrors.New("upstream unavailable")),
		next:     collector.NewFunctionCollector(corpus.Se),
	}

	for i := 0; i < 2; i++ {
		_, err := f.svc.SimulateWith(ctx, flaky, 16, "down")
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}
	require.Equal(t, int32(6), atomic.LoadInt32(&flaky.calls))

	_, err := f.svc.SimulateWith(ctx, flaky, 16, "down")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, errors.CategoryCollector, errors.ToAppError(err).Category)
	assert.Equal(t, int32(6), atomic.LoadInt32(&flaky.calls))

	assert.Equal(t, []resilience.BreakerStats{{Name: "flaky", State: "open", Failures: 2}}, f.svc.CollectorStats())
}

func TestSimulateWithDoesNotRetryValidationErrors(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyCollector{
		failures: 1,
		err:      errors.NewValidationError("malformed answer"),
		next:     collector.NewFunctionCollector(corpus.Se),
	}

	_, err := f.svc.SimulateWith(context.Background(), flaky, 16, "bad")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&flaky.calls))
}

func TestSimulateBatch(t *testing.T) {
	f := newFixture(t, WithConcurrency(2))

	reqs := []SimulationRequest{
		{Persona: "analyst", Mode: 16, Seed: "b1"},
		{Persona: "nobody", Mode: 16, Seed: "b2"},
		{Persona: "caretaker", Mode: 32, Seed: "b3"},
		{Persona: "organizer", Mode: 12, Seed: "b4"},
		{Persona: "idealist", Mode: 64, Seed: "b5"},
	}
	results := f.svc.SimulateBatch(context.Background(), reqs)
	require.Len(t, results, len(reqs))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, reqs[i].Persona, res.Persona)
	}

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrUnknownPersona)
	assert.NoError(t, results[2].Err)
	assert.Error(t, results[3].Err)
	assert.NoError(t, results[4].Err)

	assert.Len(t, results[0].Run.ScenarioIDs, 16)
	assert.Len(t, results[2].Run.ScenarioIDs, 32)
	assert.Len(t, results[4].Run.ScenarioIDs, 64)
	assert.Nil(t, results[1].Run)

	runs, err := f.svc.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSimulateBatchEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.svc.SimulateBatch(context.Background(), nil))
}
