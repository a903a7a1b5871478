package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCorpus(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 112, c.Len())

	summary := c.Summary()
	for _, a := range Archetypes {
		assert.Len(t, c.ByArchetype(a), 14, "archetype %s", a)
		for _, sc := range SituationContexts {
			assert.Equal(t, 2, summary[a][sc], "archetype %s context %s", a, sc)
		}
	}

	for _, mode := range []int{16, 32, 64} {
		assert.NoError(t, c.CheckCapacity(mode), "mode %d", mode)
	}
}

func TestScenarioInvariants(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, sc := range c.All() {
		assert.False(t, seen[sc.ID], "duplicate id %s", sc.ID)
		seen[sc.ID] = true

		assert.True(t, strings.HasPrefix(sc.ID, string(sc.Archetype)+"-"+string(sc.SituationContext)+"-"))
		assert.Equal(t, sc.SituationContext.Polarity(), sc.ContextPolarity)
		assert.NotEmpty(t, sc.Text)
		assert.NotEmpty(t, sc.Domain)

		codes := make(map[FunctionCode]bool)
		for i, o := range sc.Options {
			assert.Equal(t, string(OptionKeys[i]), o.Key, "options are sorted by key")
			assert.NotEmpty(t, o.Text)
			codes[o.Function] = true
		}
		assert.Len(t, codes, 8, "scenario %s covers every function", sc.ID)
	}
}

func TestOptionKeyRotation(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.All()
	first, ok := all[0].Option("A")
	require.True(t, ok)
	second, ok := all[1].Option("A")
	require.True(t, ok)

	assert.Equal(t, Ni, first.Function)
	assert.NotEqual(t, first.Function, second.Function)
}

func TestCorpusLookups(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	sc, ok := c.Scenario("hero-work_pressure-1")
	require.True(t, ok)
	assert.Equal(t, Hero, sc.Archetype)
	assert.Equal(t, WorkPressure, sc.SituationContext)
	assert.Equal(t, PolarityPersona, sc.ContextPolarity)
	assert.True(t, c.Contains(sc.ID))

	tests := []struct {
		name   string
		id     string
		key    string
		wantOK bool
	}{
		{name: "upper case key", id: sc.ID, key: "A", wantOK: true},
		{name: "lower case key with spaces", id: sc.ID, key: " h ", wantOK: true},
		{name: "unknown key", id: sc.ID, key: "Z", wantOK: false},
		{name: "empty key", id: sc.ID, key: "", wantOK: false},
		{name: "unknown scenario", id: "nobody-nowhere-9", key: "A", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.Option(tt.id, tt.key)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	_, ok = c.Scenario("missing")
	assert.False(t, ok)
}

func TestCorpusCopiesAreIndependent(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.All()
	all[0].ID = "mutated"
	byArch := c.ByArchetype(Hero)
	byArch[0].Text = "mutated"

	sc, ok := c.Scenario("hero-work_pressure-1")
	require.True(t, ok)
	assert.NotEqual(t, "mutated", sc.Text)
	assert.Equal(t, "hero-work_pressure-1", c.All()[0].ID)
}

func TestCheckCapacity(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	small, err := New(c.ByArchetype(Hero)[:2])
	require.NoError(t, err)

	err = small.CheckCapacity(16)
	assert.ErrorIs(t, err, ErrCorpusTooSmall)
}

func TestNewRejectsBrokenScenarios(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	base, _ := c.Scenario("sage-conflict-2")

	tests := []struct {
		name   string
		mutate func(s *Scenario) []Scenario
	}{
		{
			name: "duplicate id",
			mutate: func(s *Scenario) []Scenario {
				return []Scenario{*s, *s}
			},
		},
		{
			name: "empty id",
			mutate: func(s *Scenario) []Scenario {
				s.ID = ""
				return []Scenario{*s}
			},
		},
		{
			name: "function mapped twice",
			mutate: func(s *Scenario) []Scenario {
				s.Options[1].Function = s.Options[0].Function
				return []Scenario{*s}
			},
		},
		{
			name: "key used twice",
			mutate: func(s *Scenario) []Scenario {
				s.Options[1].Key = s.Options[0].Key
				return []Scenario{*s}
			},
		},
		{
			name: "lower case key",
			mutate: func(s *Scenario) []Scenario {
				s.Options[0].Key = strings.ToLower(s.Options[0].Key)
				return []Scenario{*s}
			},
		},
		{
			name: "polarity mismatch",
			mutate: func(s *Scenario) []Scenario {
				s.ContextPolarity = PolarityPersona
				return []Scenario{*s}
			},
		},
		{
			name: "unknown archetype",
			mutate: func(s *Scenario) []Scenario {
				s.Archetype = "jester"
				return []Scenario{*s}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			_, err := New(tt.mutate(&s))
			assert.ErrorIs(t, err, ErrInvalidCorpus)
		})
	}
}

func TestBuildRejectsIncompleteSituation(t *testing.T) {
	table, err := DefaultSeedTable()
	require.NoError(t, err)

	delete(table.Contexts[0].Situations[0].Options, "Fe")
	_, err = Build(table)
	assert.ErrorIs(t, err, ErrInvalidCorpus)

	table, err = DefaultSeedTable()
	require.NoError(t, err)
	table.Contexts[2].Situations[1].Options["Xx"] = "extra"
	_, err = Build(table)
	assert.ErrorIs(t, err, ErrInvalidCorpus)

	_, err = Build(nil)
	assert.ErrorIs(t, err, ErrInvalidCorpus)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, defaultSeed, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 112, c.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 1\nunexpected: true\n"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}
