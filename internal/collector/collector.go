// Package collector obtains one answer per presented scenario.
package collector

import (
	"context"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// Request is one batch of scenarios to answer for a run.
type Request struct {
	RunID     string
	Seed      string
	Scenarios []corpus.Scenario
}

// Collector answers scenarios. Implementations may be remote, so callers
// retry retryable errors.
type Collector interface {
	Name() string
	Collect(ctx context.Context, req Request) ([]analysis.Response, error)
}

// ScriptedCollector replays fixed answers keyed by scenario id. Scenarios
// without a scripted answer are left unanswered.
type ScriptedCollector struct {
	name    string
	answers map[string]string
}

// NewScriptedCollector copies answers.
func NewScriptedCollector(name string, answers map[string]string) *ScriptedCollector {
	cp := make(map[string]string, len(answers))
	for k, v := range answers {
		cp[k] = v
	}
	return &ScriptedCollector{name: name, answers: cp}
}

func (s *ScriptedCollector) Name() string { return s.name }

func (s *ScriptedCollector) Collect(ctx context.Context, req Request) ([]analysis.Response, error) {
	out := make([]analysis.Response, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if key, ok := s.answers[sc.ID]; ok {
			out = append(out, analysis.Response{ScenarioID: sc.ID, OptionKey: key})
		}
	}
	return out, nil
}

// FunctionCollector always picks the option mapped to one function.
type FunctionCollector struct {
	code corpus.FunctionCode
}

// NewFunctionCollector answers every scenario with code.
func NewFunctionCollector(code corpus.FunctionCode) *FunctionCollector {
	return &FunctionCollector{code: code}
}

func (f *FunctionCollector) Name() string { return "function:" + string(f.code) }

func (f *FunctionCollector) Collect(ctx context.Context, req Request) ([]analysis.Response, error) {
	out := make([]analysis.Response, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opt, ok := sc.OptionFor(f.code); ok {
			out = append(out, analysis.Response{ScenarioID: sc.ID, OptionKey: opt.Key})
		}
	}
	return out, nil
}
