package analysis

import (
	"fmt"

	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// MaxScore is the top of the normalised 0..40 scale.
const MaxScore = 40.0

// Response is one answer: the option key chosen for a scenario.
type Response struct {
	ScenarioID string `json:"scenario_id"`
	OptionKey  string `json:"option_key"`
}

// FunctionScores holds one normalised score per function code.
type FunctionScores struct {
	Ni float64 `json:"Ni"`
	Ne float64 `json:"Ne"`
	Si float64 `json:"Si"`
	Se float64 `json:"Se"`
	Ti float64 `json:"Ti"`
	Te float64 `json:"Te"`
	Fi float64 `json:"Fi"`
	Fe float64 `json:"Fe"`
}

func (s *FunctionScores) field(code corpus.FunctionCode) *float64 {
	switch code {
	case corpus.Ni:
		return &s.Ni
	case corpus.Ne:
		return &s.Ne
	case corpus.Si:
		return &s.Si
	case corpus.Se:
		return &s.Se
	case corpus.Ti:
		return &s.Ti
	case corpus.Te:
		return &s.Te
	case corpus.Fi:
		return &s.Fi
	case corpus.Fe:
		return &s.Fe
	}
	return nil
}

// Get returns the score for code, or 0 for an unknown code.
func (s FunctionScores) Get(code corpus.FunctionCode) float64 {
	if f := s.field(code); f != nil {
		return *f
	}
	return 0
}

// Set stores v for code; unknown codes are ignored.
func (s *FunctionScores) Set(code corpus.FunctionCode, v float64) {
	if f := s.field(code); f != nil {
		*f = v
	}
}

// Map returns the scores keyed by code.
func (s FunctionScores) Map() map[string]float64 {
	out := make(map[string]float64, len(corpus.FunctionCodes))
	for _, c := range corpus.FunctionCodes {
		out[string(c)] = s.Get(c)
	}
	return out
}

// IsZero reports whether every score is zero.
func (s FunctionScores) IsZero() bool {
	return s == FunctionScores{}
}

// FunctionScoresFromMap validates a caller-supplied score map. Every key
// must be a function code and every value must lie in [0, 40]; missing
// codes count as zero.
func FunctionScoresFromMap(m map[string]float64) (FunctionScores, error) {
	var s FunctionScores
	for k, v := range m {
		code, err := corpus.ParseFunctionCode(k)
		if err != nil {
			return FunctionScores{}, err
		}
		if v < 0 || v > MaxScore {
			return FunctionScores{}, fmt.Errorf("score for %s out of range [0, %g]: %g", code, MaxScore, v)
		}
		s.Set(code, v)
	}
	return s, nil
}

// ScoreResult is the scoring outcome plus bookkeeping for callers.
type ScoreResult struct {
	Scores   FunctionScores `json:"scores"`
	Counts   map[string]int `json:"counts"`
	Resolved int            `json:"resolved"`
	Ignored  int            `json:"ignored"`
}
