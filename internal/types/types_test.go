package types

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
)

func TestNewBatchSimulationResponse(t *testing.T) {
	run := database.NewRun(16, "s", "persona:analyst", "seeded", []string{"a"})
	results := []assessment.SimulationResult{
		{Index: 0, Persona: "analyst", Run: run},
		{Index: 1, Persona: "ghost", Err: stderrors.New("unknown persona")},
	}

	got := NewBatchSimulationResponse(results)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, []BatchSimulationItem{
		{Index: 0, Persona: "analyst", Run: run},
		{Index: 1, Persona: "ghost", Error: "unknown persona"},
	}, got.Results)
}

func TestNewBatchSimulationResponseEmpty(t *testing.T) {
	got := NewBatchSimulationResponse(nil)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
	assert.Zero(t, got.Succeeded)
}
