// Package sampler selects balanced, reproducible scenario subsets from the corpus.
package sampler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// SupportedModes are the assessment lengths the sampler accepts.
var SupportedModes = []int{16, 32, 64}

// ErrUnsupportedMode is returned for a mode outside SupportedModes.
var ErrUnsupportedMode = errors.New("unsupported assessment mode")

// Source tells how a selection was produced.
type Source string

const (
	SourceSeeded   Source = "seeded"
	SourceExplicit Source = "explicit"
)

// Selection is an ordered list of scenario ids.
type Selection struct {
	Mode        int      `json:"mode"`
	Seed        string   `json:"seed"`
	ScenarioIDs []string `json:"scenario_ids"`
	Source      Source   `json:"source"`
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithRandFactory replaces the default FNV-1a/mulberry32 stream.
func WithRandFactory(f RandFactory) Option {
	return func(s *Sampler) {
		if f != nil {
			s.newRand = f
		}
	}
}

// Sampler is stateless after construction and safe for concurrent use.
type Sampler struct {
	corpus      *corpus.Corpus
	byArchetype map[corpus.Archetype][]corpus.Scenario
	newRand     RandFactory
}

// New returns a sampler over c. It fails when c cannot fill every supported
// mode; that is a configuration error and callers should not retry.
func New(c *corpus.Corpus, opts ...Option) (*Sampler, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil corpus", corpus.ErrInvalidCorpus)
	}
	for _, mode := range SupportedModes {
		if err := c.CheckCapacity(mode); err != nil {
			return nil, err
		}
	}

	s := &Sampler{
		corpus:      c,
		byArchetype: make(map[corpus.Archetype][]corpus.Scenario, len(corpus.Archetypes)),
		newRand:     NewRand,
	}
	for _, a := range corpus.Archetypes {
		s.byArchetype[a] = c.ByArchetype(a)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Corpus returns the corpus the sampler draws from.
func (s *Sampler) Corpus() *corpus.Corpus { return s.corpus }

// IsSupportedMode reports whether mode is 16, 32 or 64.
func IsSupportedMode(mode int) bool {
	for _, m := range SupportedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Select returns mode scenario ids for seed. The same (mode, seed) always
// yields the same ids in the same order.
func (s *Sampler) Select(mode int, seed string) ([]string, error) {
	sel, err := s.SelectWithExplicit(mode, seed, nil)
	if err != nil {
		return nil, err
	}
	return sel.ScenarioIDs, nil
}

// SelectWithExplicit returns explicitIDs unchanged when they form a valid
// selection for mode, and a fresh seeded selection otherwise.
func (s *Sampler) SelectWithExplicit(mode int, seed string, explicitIDs []string) (Selection, error) {
	if !IsSupportedMode(mode) {
		return Selection{}, fmt.Errorf("%w: %d", ErrUnsupportedMode, mode)
	}

	if len(explicitIDs) > 0 && s.validExplicit(mode, explicitIDs) {
		ids := make([]string, len(explicitIDs))
		copy(ids, explicitIDs)
		return Selection{Mode: mode, Seed: seed, ScenarioIDs: ids, Source: SourceExplicit}, nil
	}

	return Selection{Mode: mode, Seed: seed, ScenarioIDs: s.fresh(mode, seed), Source: SourceSeeded}, nil
}

func (s *Sampler) validExplicit(mode int, ids []string) bool {
	if len(ids) != mode {
		return false
	}
	quota := mode / len(corpus.Archetypes)
	counts := make(map[corpus.Archetype]int, len(corpus.Archetypes))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
		sc, ok := s.corpus.Scenario(id)
		if !ok {
			return false
		}
		counts[sc.Archetype]++
	}
	for _, a := range corpus.Archetypes {
		if counts[a] != quota {
			return false
		}
	}
	return true
}

func (s *Sampler) fresh(mode int, seed string) []string {
	rng := s.newRand(seed)
	remaining := contextTargets(rng, mode)
	quota := mode / len(corpus.Archetypes)

	selected := make(map[string]bool, mode)
	picks := make([]corpus.Scenario, 0, mode)

	for _, a := range corpus.Archetypes {
		for n := 0; n < quota; n++ {
			candidates := s.unselected(a, selected)
			if len(candidates) == 0 {
				break
			}
			shuffle(rng, candidates)
			sort.SliceStable(candidates, func(i, j int) bool {
				return remaining[candidates[i].SituationContext.Index()] > remaining[candidates[j].SituationContext.Index()]
			})

			pick := candidates[0]
			selected[pick.ID] = true
			picks = append(picks, pick)
			remaining[pick.SituationContext.Index()]--
		}
	}

	s.rebalance(mode, picks, selected, &remaining)

	ids := make([]string, len(picks))
	for i, p := range picks {
		ids[i] = p.ID
	}
	shuffle(s.newRand(seed+":order"), ids)
	return ids
}

func (s *Sampler) unselected(a corpus.Archetype, selected map[string]bool) []corpus.Scenario {
	pool := s.byArchetype[a]
	out := make([]corpus.Scenario, 0, len(pool))
	for _, sc := range pool {
		if !selected[sc.ID] {
			out = append(out, sc)
		}
	}
	return out
}

// contextTargets spreads mode over the contexts. The remainder goes to the
// first contexts of a seed-shuffled order.
func contextTargets(rng Rand, mode int) [len(corpus.SituationContexts)]int {
	var targets [len(corpus.SituationContexts)]int
	n := len(targets)
	base, rem := mode/n, mode%n

	order := make([]int, n)
	for i := range order {
		order[i] = i
		targets[i] = base
	}
	shuffle(rng, order)
	for _, i := range order[:rem] {
		targets[i]++
	}
	return targets
}

// rebalance swaps picks out of over-filled contexts into under-filled ones,
// keeping the archetype. It stops after mode*3 rounds or when no swap exists;
// the result may stay unbalanced on corpora that cannot support it.
func (s *Sampler) rebalance(mode int, picks []corpus.Scenario, selected map[string]bool, remaining *[len(corpus.SituationContexts)]int) {
	for iter := 0; iter < mode*3; iter++ {
		if !needsRebalance(remaining) {
			return
		}
		if !s.swapOnce(picks, selected, remaining) {
			return
		}
	}
}

func needsRebalance(remaining *[len(corpus.SituationContexts)]int) bool {
	under, over := false, false
	for _, r := range remaining {
		if r > 0 {
			under = true
		}
		if r < 0 {
			over = true
		}
	}
	return under && over
}

func (s *Sampler) swapOnce(picks []corpus.Scenario, selected map[string]bool, remaining *[len(corpus.SituationContexts)]int) bool {
	for i, pick := range picks {
		from := pick.SituationContext.Index()
		if remaining[from] >= 0 {
			continue
		}
		for _, cand := range s.byArchetype[pick.Archetype] {
			to := cand.SituationContext.Index()
			if selected[cand.ID] || remaining[to] <= 0 {
				continue
			}
			delete(selected, pick.ID)
			selected[cand.ID] = true
			picks[i] = cand
			remaining[from]++
			remaining[to]--
			return true
		}
	}
	return false
}
