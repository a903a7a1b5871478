package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	// RunPending runs have scenarios but no scores yet
	RunPending RunStatus = "pending"
	// RunCompleted runs are scored and immutable
	RunCompleted RunStatus = "completed"
)

// Run is one assessment: the sampled scenarios, the answers given and,
// once completed, the scores and derived types.
type Run struct {
	ID              string                  `json:"id" db:"id"`
	Mode            int                     `json:"mode" db:"mode"`
	Seed            string                  `json:"seed" db:"seed"`
	Source          string                  `json:"source" db:"source"`
	SelectionSource string                  `json:"selection_source" db:"selection_source"`
	ScenarioIDs     []string                `json:"scenario_ids" db:"scenario_ids"`
	Responses       []analysis.Response     `json:"responses" db:"responses"`
	Scores          analysis.FunctionScores `json:"scores" db:"scores"`
	Types           typology.Types          `json:"types" db:"-"`
	Resolved        int                     `json:"resolved" db:"resolved"`
	Ignored         int                     `json:"ignored" db:"ignored"`
	Status          RunStatus               `json:"status" db:"status"`
	CreatedAt       time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at" db:"updated_at"`
	CompletedAt     *time.Time              `json:"completed_at,omitempty" db:"completed_at"`
}

// IsCompleted reports whether the run has been scored.
func (r *Run) IsCompleted() bool { return r.Status == RunCompleted }

// NewRun creates a pending run with a generated ID.
func NewRun(mode int, seed, source, selectionSource string, scenarioIDs []string) *Run {
	now := time.Now().UTC()
	ids := make([]string, len(scenarioIDs))
	copy(ids, scenarioIDs)
	return &Run{
		ID:              uuid.New().String(),
		Mode:            mode,
		Seed:            seed,
		Source:          source,
		SelectionSource: selectionSource,
		ScenarioIDs:     ids,
		Responses:       []analysis.Response{},
		Status:          RunPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// TypeCount is the number of completed runs that derived one type code.
type TypeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}
