package collector

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/sampler"
)

// Persona is a simulated respondent: a relative preference per function.
type Persona struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Weights     map[corpus.FunctionCode]float64 `json:"weights"`
}

func weights(ni, ne, si, se, ti, te, fi, fe float64) map[corpus.FunctionCode]float64 {
	return map[corpus.FunctionCode]float64{
		corpus.Ni: ni, corpus.Ne: ne, corpus.Si: si, corpus.Se: se,
		corpus.Ti: ti, corpus.Te: te, corpus.Fi: fi, corpus.Fe: fe,
	}
}

var builtinPersonas = []Persona{
	{
		Name:        "strategist",
		Description: "Long-range planner who turns a private vision into an executable plan.",
		Weights:     weights(6, 1.5, 0.5, 0.3, 1.5, 4, 1, 0.5),
	},
	{
		Name:        "caretaker",
		Description: "Keeps people looked after and traditions intact.",
		Weights:     weights(0.5, 0.8, 4, 1, 0.5, 1.2, 1, 6),
	},
	{
		Name:        "improviser",
		Description: "Acts in the moment and troubleshoots from first principles.",
		Weights:     weights(0.3, 1.5, 0.5, 6, 4, 1.2, 0.8, 0.7),
	},
	{
		Name:        "idealist",
		Description: "Follows personal values and chases possibilities.",
		Weights:     weights(1, 4, 0.7, 0.5, 0.5, 0.3, 6, 1.5),
	},
	{
		Name:        "organizer",
		Description: "Runs things by schedule, precedent and measurable goals.",
		Weights:     weights(0.8, 0.5, 4, 0.8, 1, 6, 0.5, 1.2),
	},
	{
		Name:        "analyst",
		Description: "Builds internal models and tests ideas against them.",
		Weights:     weights(1.5, 4, 0.5, 0.5, 6, 1, 1, 0.3),
	},
}

// Personas returns the built-in personas sorted by name.
func Personas() []Persona {
	out := make([]Persona, len(builtinPersonas))
	copy(out, builtinPersonas)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupPersona finds a built-in persona by name.
func LookupPersona(name string) (Persona, bool) {
	for _, p := range builtinPersonas {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}

// PersonaCollector stands in for an AI role-play: each scenario is answered
// by a weighted draw over its options. Draws come from a stream keyed by
// persona, seed and "answers", so a simulated run replays exactly.
type PersonaCollector struct {
	persona Persona
	newRand sampler.RandFactory
}

// NewPersonaCollector uses newRand for draws, or sampler.NewRand when nil.
func NewPersonaCollector(p Persona, newRand sampler.RandFactory) *PersonaCollector {
	if newRand == nil {
		newRand = sampler.NewRand
	}
	return &PersonaCollector{persona: p, newRand: newRand}
}

func (pc *PersonaCollector) Name() string { return "persona:" + pc.persona.Name }

// Persona returns the simulated persona.
func (pc *PersonaCollector) Persona() Persona { return pc.persona }

func (pc *PersonaCollector) Collect(ctx context.Context, req Request) ([]analysis.Response, error) {
	rng := pc.newRand(pc.persona.Name + ":" + req.Seed + ":answers")

	out := make([]analysis.Response, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, analysis.Response{ScenarioID: sc.ID, OptionKey: pc.choose(rng, sc)})
	}
	return out, nil
}

// choose walks the options in key order; with no positive weight every
// option is equally likely.
func (pc *PersonaCollector) choose(rng sampler.Rand, sc corpus.Scenario) string {
	var w [len(corpus.OptionKeys)]float64
	total := 0.0
	for i, opt := range sc.Options {
		if v := pc.persona.Weights[opt.Function]; v > 0 {
			w[i] = v
			total += v
		}
	}
	if total == 0 {
		return sc.Options[sampler.Intn(rng, len(sc.Options))].Key
	}

	target := rng.Float64() * total
	last := 0
	for i, opt := range sc.Options {
		if w[i] == 0 {
			continue
		}
		last = i
		target -= w[i]
		if target < 0 {
			return opt.Key
		}
	}
	return sc.Options[last].Key
}
