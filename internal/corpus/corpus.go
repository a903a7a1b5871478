package corpus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCorpus reports a seed table or scenario list that breaks a corpus invariant.
	ErrInvalidCorpus = errors.New("invalid scenario corpus")
	// ErrCorpusTooSmall reports that an archetype cannot fill the quota of a mode.
	ErrCorpusTooSmall = errors.New("scenario corpus too small for mode")
)

// Corpus is the read-only scenario table. It is built once and safe for
// concurrent readers; no method mutates it.
type Corpus struct {
	scenarios   []Scenario
	byID        map[string]int
	byArchetype map[Archetype][]int
}

// Build expands a seed table into a corpus. Every archetype framing is
// combined with every context situation. Option keys are rotated by the
// scenario's ordinal so the key-to-function mapping differs between
// scenarios: function i of FunctionCodes gets key OptionKeys[(i+n)%8].
func Build(table *SeedTable) (*Corpus, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil seed table", ErrInvalidCorpus)
	}

	scenarios := make([]Scenario, 0, len(table.Archetypes)*len(table.Contexts)*2)
	n := 0
	for _, as := range table.Archetypes {
		archetype, err := ParseArchetype(as.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
		}
		for _, cs := range table.Contexts {
			ctx, err := ParseSituationContext(cs.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
			}
			for i, sit := range cs.Situations {
				sc := Scenario{
					ID:               fmt.Sprintf("%s-%s-%d", archetype, ctx, i+1),
					Archetype:        archetype,
					SituationContext: ctx,
					ContextPolarity:  ctx.Polarity(),
					Domain:           sit.Domain,
					Text:             strings.TrimSpace(as.Framing + " " + sit.Prompt),
				}
				for fi, code := range FunctionCodes {
					text, ok := sit.Options[string(code)]
					if !ok {
						return nil, fmt.Errorf("%w: %s has no option for %s", ErrInvalidCorpus, sc.ID, code)
					}
					sc.Options[fi] = ScenarioOption{
						Key:      string(OptionKeys[(fi+n)%len(OptionKeys)]),
						Text:     text,
						Function: code,
					}
				}
				if len(sit.Options) != len(FunctionCodes) {
					return nil, fmt.Errorf("%w: %s has %d options, want %d", ErrInvalidCorpus, sc.ID, len(sit.Options), len(FunctionCodes))
				}
				sort.Slice(sc.Options[:], func(a, b int) bool {
					return sc.Options[a].Key < sc.Options[b].Key
				})
				scenarios = append(scenarios, sc)
				n++
			}
		}
	}

	return New(scenarios)
}

// New builds a corpus from already expanded scenarios after checking the
// per-scenario invariants. The slice is copied.
func New(scenarios []Scenario) (*Corpus, error) {
	c := &Corpus{
		scenarios:   make([]Scenario, len(scenarios)),
		byID:        make(map[string]int, len(scenarios)),
		byArchetype: make(map[Archetype][]int, len(Archetypes)),
	}
	copy(c.scenarios, scenarios)

	for i := range c.scenarios {
		sc := &c.scenarios[i]
		if err := validateScenario(sc); err != nil {
			return nil, err
		}
		if _, dup := c.byID[sc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate scenario id %q", ErrInvalidCorpus, sc.ID)
		}
		c.byID[sc.ID] = i
		c.byArchetype[sc.Archetype] = append(c.byArchetype[sc.Archetype], i)
	}

	return c, nil
}

func validateScenario(sc *Scenario) error {
	if sc.ID == "" {
		return fmt.Errorf("%w: scenario without id", ErrInvalidCorpus)
	}
	if _, err := ParseArchetype(string(sc.Archetype)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCorpus, sc.ID, err)
	}
	if _, err := ParseSituationContext(string(sc.SituationContext)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCorpus, sc.ID, err)
	}
	if sc.ContextPolarity != sc.SituationContext.Polarity() {
		return fmt.Errorf("%w: %s: polarity %q does not match context %q", ErrInvalidCorpus, sc.ID, sc.ContextPolarity, sc.SituationContext)
	}

	var seenCodes [len(FunctionCodes)]bool
	seenKeys := make(map[string]bool, len(OptionKeys))
	for _, o := range sc.Options {
		idx := o.Function.Index()
		if idx < 0 {
			return fmt.Errorf("%w: %s: unknown function %q", ErrInvalidCorpus, sc.ID, o.Function)
		}
		if seenCodes[idx] {
			return fmt.Errorf("%w: %s: function %s mapped twice", ErrInvalidCorpus, sc.ID, o.Function)
		}
		seenCodes[idx] = true

		key, ok := ParseOptionKey(o.Key)
		if !ok || key != o.Key {
			return fmt.Errorf("%w: %s: invalid option key %q", ErrInvalidCorpus, sc.ID, o.Key)
		}
		if seenKeys[key] {
			return fmt.Errorf("%w: %s: option key %s used twice", ErrInvalidCorpus, sc.ID, key)
		}
		seenKeys[key] = true
	}
	return nil
}

// Len returns the number of scenarios.
func (c *Corpus) Len() int { return len(c.scenarios) }

// All returns a copy of every scenario in build order.
func (c *Corpus) All() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	copy(out, c.scenarios)
	return out
}

// Scenario looks up a scenario by id.
func (c *Corpus) Scenario(id string) (Scenario, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Scenario{}, false
	}
	return c.scenarios[i], true
}

// Contains reports whether id is a known scenario.
func (c *Corpus) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Option resolves the function code behind an answer. The key is normalised first.
func (c *Corpus) Option(id, key string) (ScenarioOption, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ScenarioOption{}, false
	}
	k, ok := ParseOptionKey(key)
	if !ok {
		return ScenarioOption{}, false
	}
	return c.scenarios[i].Option(k)
}

// ByArchetype returns the archetype's scenarios in build order.
func (c *Corpus) ByArchetype(a Archetype) []Scenario {
	idx := c.byArchetype[a]
	out := make([]Scenario, len(idx))
	for i, j := range idx {
		out[i] = c.scenarios[j]
	}
	return out
}

// CheckCapacity verifies every archetype can supply mode/8 scenarios.
func (c *Corpus) CheckCapacity(mode int) error {
	quota := mode / len(Archetypes)
	for _, a := range Archetypes {
		if have := len(c.byArchetype[a]); have < quota {
			return fmt.Errorf("%w: archetype %s has %d scenarios, mode %d needs %d", ErrCorpusTooSmall, a, have, mode, quota)
		}
	}
	return nil
}

// Summary counts scenarios per archetype and context.
func (c *Corpus) Summary() map[Archetype]map[SituationContext]int {
	out := make(map[Archetype]map[SituationContext]int, len(Archetypes))
	for _, sc := range c.scenarios {
		if out[sc.Archetype] == nil {
			out[sc.Archetype] = make(map[SituationContext]int, len(SituationContexts))
		}
		out[sc.Archetype][sc.SituationContext]++
	}
	return out
}
