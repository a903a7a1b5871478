package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

func testCorpus(t testing.TB) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Default()
	require.NoError(t, err)
	return c
}

// answer returns the response that picks code in every given scenario.
func answer(t testing.TB, c *corpus.Corpus, code corpus.FunctionCode, ids ...string) []Response {
	t.Helper()
	out := make([]Response, 0, len(ids))
	for _, id := range ids {
		sc, ok := c.Scenario(id)
		require.True(t, ok, id)
		opt, ok := sc.OptionFor(code)
		require.True(t, ok)
		out = append(out, Response{ScenarioID: id, OptionKey: opt.Key})
	}
	return out
}

func firstIDs(c *corpus.Corpus, n int) []string {
	all := c.All()
	ids := make([]string, 0, n)
	for _, sc := range all[:n] {
		ids = append(ids, sc.ID)
	}
	return ids
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "zero", input: 0, expected: 0},
		{name: "one third of forty", input: 40.0 / 3, expected: 13.33},
		{name: "two thirds of forty", input: 80.0 / 3, expected: 26.67},
		{name: "already rounded", input: 2.5, expected: 2.5},
		{name: "full scale", input: 40, expected: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, round2(tt.input))
		})
	}
}

func TestScore(t *testing.T) {
	c := testCorpus(t)
	ids := firstIDs(c, 16)

	mixed := append(answer(t, c, corpus.Ni, ids[:8]...), answer(t, c, corpus.Fe, ids[8:12]...)...)
	mixed = append(mixed, answer(t, c, corpus.Se, ids[12:]...)...)

	thirds := append(answer(t, c, corpus.Ti, ids[0]), answer(t, c, corpus.Fi, ids[1])...)
	thirds = append(thirds, answer(t, c, corpus.Ne, ids[2])...)

	tests := []struct {
		name     string
		input    []Response
		expected FunctionScores
		resolved int
		ignored  int
	}{
		{
			name:     "empty input scores zero",
			input:    nil,
			expected: FunctionScores{},
		},
		{
			name:     "only extraverted thinking",
			input:    answer(t, c, corpus.Te, ids...),
			expected: FunctionScores{Te: 40},
			resolved: 16,
		},
		{
			name:     "mixed answers",
			input:    mixed,
			expected: FunctionScores{Ni: 20, Fe: 10, Se: 10},
			resolved: 16,
		},
		{
			name:     "thirds are rounded to two decimals",
			input:    thirds,
			expected: FunctionScores{Ti: 13.33, Fi: 13.33, Ne: 13.33},
			resolved: 3,
		},
		{
			name: "unknown scenario and key are ignored",
			input: append(answer(t, c, corpus.Si, ids[0]),
				Response{ScenarioID: "missing-scenario-1", OptionKey: "A"},
				Response{ScenarioID: ids[1], OptionKey: "Q"},
			),
			expected: FunctionScores{Si: 40},
			resolved: 1,
			ignored:  2,
		},
		{
			name: "nothing resolves",
			input: []Response{
				{ScenarioID: "missing-scenario-1", OptionKey: "A"},
				{ScenarioID: ids[0], OptionKey: ""},
			},
			expected: FunctionScores{},
			ignored:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(c, tt.input)
			assert.Equal(t, tt.expected, result.Scores)
			assert.Equal(t, tt.resolved, result.Resolved)
			assert.Equal(t, tt.ignored, result.Ignored)
		})
	}
}

func TestScoreOrderInvariant(t *testing.T) {
	c := testCorpus(t)
	ids := firstIDs(c, 32)

	var responses []Response
	for i, id := range ids {
		code := corpus.FunctionCodes[i%len(corpus.FunctionCodes)]
		if i%5 == 0 {
			code = corpus.Ni
		}
		responses = append(responses, answer(t, c, code, id)...)
	}
	want := Score(c, responses)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Response{}, responses...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Score(c, shuffled))
	}
}

func TestScoreCounts(t *testing.T) {
	c := testCorpus(t)
	ids := firstIDs(c, 4)

	result := Score(c, append(answer(t, c, corpus.Fi, ids[:3]...), answer(t, c, corpus.Ti, ids[3])...))

	assert.Equal(t, 3, result.Counts["Fi"])
	assert.Equal(t, 1, result.Counts["Ti"])
	assert.Equal(t, 0, result.Counts["Ne"])
	assert.Len(t, result.Counts, 8)
	assert.Equal(t, 30.0, result.Scores.Fi)
	assert.Equal(t, 10.0, result.Scores.Ti)
}

func TestScoreAcceptsLooseKeys(t *testing.T) {
	c := testCorpus(t)
	ids := firstIDs(c, 1)
	resp := answer(t, c, corpus.Te, ids...)
	resp[0].OptionKey = " " + string(resp[0].OptionKey[0]+'a'-'A') + " "

	result := Score(c, resp)
	assert.Equal(t, 40.0, result.Scores.Te)
}
