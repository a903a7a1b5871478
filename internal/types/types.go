// Package types holds the request and response bodies of the HTTP API.
package types

import (
	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/assessment"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
)

// SampleRequest asks for a scenario selection
type SampleRequest struct {
	Mode        int      `json:"mode" binding:"required" example:"32"`
	Seed        string   `json:"seed" example:"user-42"`
	ExplicitIDs []string `json:"explicit_ids,omitempty"`
}

// SampleResponse is an ordered scenario selection
type SampleResponse struct {
	Mode        int      `json:"mode"`
	Seed        string   `json:"seed"`
	ScenarioIDs []string `json:"scenario_ids"`
	Source      string   `json:"source"`
}

// ResponsesRequest carries answers for scoring, analysis or a run
type ResponsesRequest struct {
	Responses []analysis.Response `json:"responses"`
}

// DeriveRequest carries scores keyed by function code
type DeriveRequest struct {
	Scores map[string]float64 `json:"scores" binding:"required"`
}

// CreateRunRequest starts a run
type CreateRunRequest struct {
	Mode        int      `json:"mode" binding:"required" example:"16"`
	Seed        string   `json:"seed,omitempty"`
	ExplicitIDs []string `json:"explicit_ids,omitempty"`
}

// RunListResponse is a page of runs, newest first
type RunListResponse struct {
	Runs  []*database.Run `json:"runs"`
	Count int             `json:"count"`
}

// BatchSimulationRequest runs several persona simulations
type BatchSimulationRequest struct {
	Requests []assessment.SimulationRequest `json:"requests" binding:"required"`
}

// BatchSimulationItem is one result of a batch; Error is set when Run is not
type BatchSimulationItem struct {
	Index   int           `json:"index"`
	Persona string        `json:"persona"`
	Run     *database.Run `json:"run,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// BatchSimulationResponse keeps request order
type BatchSimulationResponse struct {
	Results   []BatchSimulationItem `json:"results"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// NewBatchSimulationResponse flattens service results for the wire.
func NewBatchSimulationResponse(results []assessment.SimulationResult) BatchSimulationResponse {
	resp := BatchSimulationResponse{Results: make([]BatchSimulationItem, len(results))}
	for i, r := range results {
		item := BatchSimulationItem{Index: r.Index, Persona: r.Persona, Run: r.Run}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results[i] = item
	}
	return resp
}
