package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/config"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/function-o-meter/internal/sampler"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestSampleCommand(t *testing.T) {
	out, err := execute(t, "sample", "--mode", "16", "--seed", "abc")
	require.NoError(t, err)

	c, err := corpus.Default()
	require.NoError(t, err)
	smp, err := sampler.New(c)
	require.NoError(t, err)
	want, err := smp.Select(16, "abc")
	require.NoError(t, err)

	assert.Equal(t, want, strings.Fields(out))
}

func TestSampleCommandErrors(t *testing.T) {
	_, err := execute(t, "sample", "--mode", "20", "--seed", "abc")
	assert.ErrorIs(t, err, sampler.ErrUnsupportedMode)

	_, err = execute(t, "sample", "--log-level", "loud")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfiguration, errors.ToAppError(err).Category)
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios")
	require.NoError(t, err)

	var summary struct {
		Scenarios   int                       `json:"scenarios"`
		ByArchetype map[string]map[string]int `json:"by_archetype"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 112, summary.Scenarios)
	assert.Len(t, summary.ByArchetype, 8)
	assert.Equal(t, 2, summary.ByArchetype["hero"]["conflict"])
}

func TestScenariosCommandBadCorpus(t *testing.T) {
	_, err := execute(t, "scenarios", "--corpus-path", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfiguration, errors.ToAppError(err).Category)
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	args := []string{"simulate", "--data-dir", dir, "--persona", "analyst", "--mode", "16", "--seed", "cli", "--log-level", "error"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	var a, b simulationOutput
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, "analyst", a.Persona)
	assert.Equal(t, 16, a.Resolved)
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Types, b.Types)
	assert.Len(t, a.Types.StackType, 4)

	_, err = os.Stat(filepath.Join(dir, database.FileName))
	assert.NoError(t, err)
}

func TestAppHealthChecks(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	a, err := newApp(cfg, io.Discard)
	require.NoError(t, err)

	checks := a.healthChecks()
	require.Len(t, checks, 1)
	assert.Equal(t, "store", checks[0].Name)

	result, err := checks[0].Check(context.Background())
	require.NoError(t, err)
	stats, ok := result.(database.StoreStats)
	require.True(t, ok)
	assert.Equal(t, 0, stats.Runs)
	assert.Equal(t, database.DefaultPoolConfig().MaxOpenConns, stats.Pool.MaxOpenConns)

	a.Close()
	_, err = checks[0].Check(context.Background())
	assert.Error(t, err)
}

func TestSimulateUnknownPersona(t *testing.T) {
	_, err := execute(t, "simulate", "--data-dir", t.TempDir(), "--persona", "ghost", "--log-level", "error")
	assert.ErrorIs(t, err, assessment.ErrUnknownPersona)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Version: dev\n", out)
}
