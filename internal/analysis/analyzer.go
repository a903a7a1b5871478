package analysis

import (
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// Analyzer scores responses against one corpus.
type Analyzer struct {
	corpus *corpus.Corpus
}

// NewAnalyzer creates an analyzer over c.
func NewAnalyzer(c *corpus.Corpus) *Analyzer {
	return &Analyzer{corpus: c}
}

// Score applies the plain scoring rule: every response counts once and
// unresolvable ones are ignored.
func (a *Analyzer) Score(responses []Response) ScoreResult {
	return Score(a.corpus, responses)
}

// RunAnalysis is the score of a run plus the responses it accepted.
type RunAnalysis struct {
	ScoreResult
	Accepted []Response `json:"accepted"`
}

// AnalyzeRun preprocesses responses for a run presenting scenarioIDs, then
// scores what is left. Dropped responses are reported as ignored.
func (a *Analyzer) AnalyzeRun(scenarioIDs []string, responses []Response) RunAnalysis {
	kept, dropped := NewPreprocessor(scenarioIDs).Process(responses)
	result := Score(a.corpus, kept)
	result.Ignored += dropped
	return RunAnalysis{ScoreResult: result, Accepted: kept}
}
