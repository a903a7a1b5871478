package sampler

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSampler(t *testing.T, opts ...Option) *Sampler {
	t.Helper()
	c, err := corpus.Default()
	require.NoError(t, err)
	s, err := New(c, opts...)
	require.NoError(t, err)
	return s
}

func contextSpread(t *testing.T, c *corpus.Corpus, ids []string) int {
	t.Helper()
	var counts [len(corpus.SituationContexts)]int
	for _, id := range ids {
		sc, ok := c.Scenario(id)
		require.True(t, ok, "unknown id %s", id)
		counts[sc.SituationContext.Index()]++
	}
	lo, hi := counts[0], counts[0]
	for _, n := range counts[1:] {
		lo = min(lo, n)
		hi = max(hi, n)
	}
	return hi - lo
}

func TestSelectProperties(t *testing.T) {
	s := newTestSampler(t)

	tests := []struct {
		mode      int
		maxSpread int
	}{
		{mode: 16, maxSpread: 1},
		{mode: 32, maxSpread: 5},
		{mode: 64, maxSpread: 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("mode %d", tt.mode), func(t *testing.T) {
			for i := 0; i < 50; i++ {
				seed := fmt.Sprintf("user-%d", i)
				ids, err := s.Select(tt.mode, seed)
				require.NoError(t, err)
				require.Len(t, ids, tt.mode)

				seen := make(map[string]bool, len(ids))
				perArchetype := make(map[corpus.Archetype]int)
				for _, id := range ids {
					assert.False(t, seen[id], "seed %s duplicate %s", seed, id)
					seen[id] = true
					sc, ok := s.Corpus().Scenario(id)
					require.True(t, ok)
					perArchetype[sc.Archetype]++
				}
				for _, a := range corpus.Archetypes {
					assert.Equal(t, tt.mode/8, perArchetype[a], "seed %s archetype %s", seed, a)
				}
				assert.LessOrEqual(t, contextSpread(t, s.Corpus(), ids), tt.maxSpread, "seed %s", seed)
			}
		})
	}
}

func TestSelectDeterministic(t *testing.T) {
	a := newTestSampler(t)
	b := newTestSampler(t)

	for _, mode := range SupportedModes {
		first, err := a.Select(mode, "reproducible")
		require.NoError(t, err)
		second, err := a.Select(mode, "reproducible")
		require.NoError(t, err)
		third, err := b.Select(mode, "reproducible")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, first, third)
	}
}

func TestSelectSeedsDiffer(t *testing.T) {
	s := newTestSampler(t)

	distinct := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ids, err := s.Select(16, fmt.Sprintf("seed-%d", i))
		require.NoError(t, err)
		distinct[strings.Join(ids, ",")] = true
	}
	assert.GreaterOrEqual(t, len(distinct), 95)
}

func TestSelectUnsupportedMode(t *testing.T) {
	s := newTestSampler(t)

	for _, mode := range []int{0, 8, 24, 128, -16} {
		_, err := s.Select(mode, "x")
		assert.ErrorIs(t, err, ErrUnsupportedMode, "mode %d", mode)
	}
}

func TestSelectWithExplicit(t *testing.T) {
	s := newTestSampler(t)

	valid, err := s.Select(16, "resume")
	require.NoError(t, err)
	fresh, err := s.Select(16, "other")
	require.NoError(t, err)

	hero := s.Corpus().ByArchetype(corpus.Hero)
	unbalanced := append([]string{}, valid...)
	for i, id := range unbalanced {
		if !strings.HasPrefix(id, "hero-") {
			for _, sc := range hero {
				if !contains(unbalanced, sc.ID) {
					unbalanced[i] = sc.ID
					break
				}
			}
			break
		}
	}

	duplicated := append([]string{}, valid...)
	duplicated[1] = duplicated[0]

	unknown := append([]string{}, valid...)
	unknown[3] = "hero-nowhere-1"

	tests := []struct {
		name       string
		ids        []string
		want       []string
		wantSource Source
	}{
		{name: "valid list returned unchanged", ids: valid, want: valid, wantSource: SourceExplicit},
		{name: "empty list", ids: nil, want: fresh, wantSource: SourceSeeded},
		{name: "wrong length", ids: valid[:15], want: fresh, wantSource: SourceSeeded},
		{name: "unbalanced archetypes", ids: unbalanced, want: fresh, wantSource: SourceSeeded},
		{name: "duplicate ids", ids: duplicated, want: fresh, wantSource: SourceSeeded},
		{name: "unknown id", ids: unknown, want: fresh, wantSource: SourceSeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := s.SelectWithExplicit(16, "other", tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.ScenarioIDs)
			assert.Equal(t, tt.wantSource, sel.Source)
			assert.Equal(t, 16, sel.Mode)
			assert.Equal(t, "other", sel.Seed)
		})
	}
}

func TestSelectWithExplicitCopiesInput(t *testing.T) {
	s := newTestSampler(t)

	ids, err := s.Select(32, "copy")
	require.NoError(t, err)
	sel, err := s.SelectWithExplicit(32, "copy", ids)
	require.NoError(t, err)

	sel.ScenarioIDs[0] = "changed"
	assert.NotEqual(t, "changed", ids[0])
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type recordingFactory struct {
	mu    sync.Mutex
	seeds []string
}

func (f *recordingFactory) open(seed string) Rand {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeds = append(f.seeds, seed)
	return constRand(0)
}

func TestSelectUsesIndependentStreams(t *testing.T) {
	rec := &recordingFactory{}
	s := newTestSampler(t, WithRandFactory(rec.open))

	ids, err := s.Select(32, "abc")
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "abc:order"}, rec.seeds)
	assert.Len(t, ids, 32)
	assert.LessOrEqual(t, contextSpread(t, s.Corpus(), ids), 5)
}

func TestSelectWithFixedStreams(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.999999} {
		s := newTestSampler(t, WithRandFactory(func(string) Rand { return constRand(v) }))

		a, err := s.Select(16, "one")
		require.NoError(t, err)
		b, err := s.Select(16, "two")
		require.NoError(t, err)

		assert.Equal(t, a, b, "a fixed stream ignores the seed")
		assert.LessOrEqual(t, contextSpread(t, s.Corpus(), a), 1)
	}
}

func TestNewRejectsSmallCorpus(t *testing.T) {
	full, err := corpus.Default()
	require.NoError(t, err)

	var scenarios []corpus.Scenario
	for _, a := range corpus.Archetypes {
		scenarios = append(scenarios, full.ByArchetype(a)[:4]...)
	}
	small, err := corpus.New(scenarios)
	require.NoError(t, err)

	_, err = New(small)
	assert.ErrorIs(t, err, corpus.ErrCorpusTooSmall)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestSelectConcurrent(t *testing.T) {
	s := newTestSampler(t)
	want, err := s.Select(64, "shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Select(64, "shared")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestContextTargets(t *testing.T) {
	for _, mode := range SupportedModes {
		targets := contextTargets(NewRand("targets"), mode)
		total := 0
		for _, n := range targets {
			total += n
			assert.Contains(t, []int{mode / 7, mode/7 + 1}, n)
		}
		assert.Equal(t, mode, total)
	}
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// skewedCorpus keeps every context for the archetypes in full and only the
// first four contexts for the rest, so shadow contexts can only be filled
// from the full archetypes.
func skewedCorpus(t *testing.T, full ...corpus.Archetype) *corpus.Corpus {
	t.Helper()
	base, err := corpus.Default()
	require.NoError(t, err)

	keep := make(map[corpus.Archetype]bool, len(full))
	for _, a := range full {
		keep[a] = true
	}
	var scenarios []corpus.Scenario
	for _, a := range corpus.Archetypes {
		for _, sc := range base.ByArchetype(a) {
			if keep[a] || sc.SituationContext.Index() < 4 {
				scenarios = append(scenarios, sc)
			}
		}
	}
	c, err := corpus.New(scenarios)
	require.NoError(t, err)
	return c
}

func TestSelectSkewedCorpus(t *testing.T) {
	tests := []struct {
		name string
		full []corpus.Archetype
	}{
		{name: "leading archetypes complete", full: []corpus.Archetype{corpus.Hero, corpus.Caregiver}},
		{name: "trailing archetypes complete", full: []corpus.Archetype{corpus.Creator, corpus.Rebel}},
		{name: "single archetype complete", full: []corpus.Archetype{corpus.Sage}},
	}

	for _, tt := range tests {
		c := skewedCorpus(t, tt.full...)
		s, err := New(c)
		require.NoError(t, err)

		for _, mode := range SupportedModes {
			t.Run(fmt.Sprintf("%s mode %d", tt.name, mode), func(t *testing.T) {
				for i := 0; i < 40; i++ {
					seed := fmt.Sprintf("skew-%d", i)
					ids, err := s.Select(mode, seed)
					require.NoError(t, err)
					require.Len(t, ids, mode)

					again, err := s.Select(mode, seed)
					require.NoError(t, err)
					assert.Equal(t, ids, again, "seed %s", seed)

					seen := make(map[string]bool, len(ids))
					perArchetype := make(map[corpus.Archetype]int)
					var counts [len(corpus.SituationContexts)]int
					for _, id := range ids {
						assert.False(t, seen[id], "seed %s duplicate %s", seed, id)
						seen[id] = true
						sc, ok := c.Scenario(id)
						require.True(t, ok)
						perArchetype[sc.Archetype]++
						counts[sc.SituationContext.Index()]++
					}
					for _, a := range corpus.Archetypes {
						assert.Equal(t, mode/8, perArchetype[a], "seed %s archetype %s", seed, a)
					}

					// no pick in an over-filled context may have a free
					// same-archetype scenario in an under-filled one
					targets := contextTargets(NewRand(seed), mode)
					for _, id := range ids {
						sc, _ := c.Scenario(id)
						from := sc.SituationContext.Index()
						if counts[from] <= targets[from] {
							continue
						}
						for _, cand := range c.ByArchetype(sc.Archetype) {
							to := cand.SituationContext.Index()
							assert.False(t, !seen[cand.ID] && counts[to] < targets[to],
								"seed %s: %s could move to %s", seed, id, cand.ID)
						}
					}
				}
			})
		}
	}
}

func firstInContext(pool []corpus.Scenario, ctx corpus.SituationContext, skip map[string]bool) corpus.Scenario {
	for _, sc := range pool {
		if sc.SituationContext == ctx && !skip[sc.ID] {
			return sc
		}
	}
	return corpus.Scenario{}
}

func TestRebalanceSwapsWithinArchetype(t *testing.T) {
	s := newTestSampler(t)
	hero := s.byArchetype[corpus.Hero]

	from := firstInContext(hero, corpus.WorkPressure, nil)
	want := firstInContext(hero, corpus.Conflict, nil)
	require.NotEmpty(t, from.ID)
	require.NotEmpty(t, want.ID)

	picks := []corpus.Scenario{from}
	selected := map[string]bool{from.ID: true}
	var remaining [len(corpus.SituationContexts)]int
	remaining[corpus.WorkPressure.Index()] = -1
	remaining[corpus.Conflict.Index()] = 1

	s.rebalance(16, picks, selected, &remaining)

	assert.Equal(t, want.ID, picks[0].ID)
	assert.Equal(t, map[string]bool{want.ID: true}, selected)
	assert.Equal(t, [len(corpus.SituationContexts)]int{}, remaining)
}

func TestRebalanceMovesEveryOverfilledPick(t *testing.T) {
	s := newTestSampler(t)
	hero := s.byArchetype[corpus.Hero]

	first := firstInContext(hero, corpus.WorkPressure, nil)
	second := firstInContext(hero, corpus.WorkPressure, map[string]bool{first.ID: true})
	require.NotEmpty(t, second.ID)

	picks := []corpus.Scenario{first, second}
	selected := map[string]bool{first.ID: true, second.ID: true}
	var remaining [len(corpus.SituationContexts)]int
	remaining[corpus.WorkPressure.Index()] = -2
	remaining[corpus.Conflict.Index()] = 1
	remaining[corpus.Setback.Index()] = 1

	s.rebalance(16, picks, selected, &remaining)

	assert.Equal(t, corpus.Conflict, picks[0].SituationContext)
	assert.Equal(t, corpus.Setback, picks[1].SituationContext)
	assert.NotEqual(t, picks[0].ID, picks[1].ID)
	assert.Len(t, selected, 2)
	assert.Equal(t, [len(corpus.SituationContexts)]int{}, remaining)
}

func TestRebalanceLeavesImpossibleSwap(t *testing.T) {
	c := skewedCorpus(t, corpus.Hero)
	s, err := New(c)
	require.NoError(t, err)

	explorer := firstInContext(s.byArchetype[corpus.Explorer], corpus.WorkPressure, nil)
	require.NotEmpty(t, explorer.ID)

	picks := []corpus.Scenario{explorer}
	selected := map[string]bool{explorer.ID: true}
	var remaining [len(corpus.SituationContexts)]int
	remaining[corpus.WorkPressure.Index()] = -1
	remaining[corpus.Conflict.Index()] = 1
	before := remaining

	s.rebalance(16, picks, selected, &remaining)

	assert.Equal(t, explorer.ID, picks[0].ID)
	assert.Equal(t, map[string]bool{explorer.ID: true}, selected)
	assert.Equal(t, before, remaining)
}
