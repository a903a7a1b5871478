package analysis

import (
	"math"

	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// OptionResolver maps an answer to the option it chose.
type OptionResolver interface {
	Option(scenarioID, key string) (corpus.ScenarioOption, bool)
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func countFunctions(r OptionResolver, responses []Response) ([len(corpus.FunctionCodes)]int, int) {
	var counts [len(corpus.FunctionCodes)]int
	resolved := 0
	for _, resp := range responses {
		opt, ok := r.Option(resp.ScenarioID, resp.OptionKey)
		if !ok {
			continue
		}
		idx := opt.Function.Index()
		if idx < 0 {
			continue
		}
		counts[idx]++
		resolved++
	}
	return counts, resolved
}

func normalise(counts [len(corpus.FunctionCodes)]int, resolved int) FunctionScores {
	var s FunctionScores
	if resolved == 0 {
		return s
	}
	for i, code := range corpus.FunctionCodes {
		s.Set(code, round2(float64(counts[i])/float64(resolved)*MaxScore))
	}
	return s
}

// Score aggregates responses into normalised function scores. Unknown
// scenarios and keys are skipped; with nothing resolved every score is zero.
// The result does not depend on the order of responses.
func Score(r OptionResolver, responses []Response) ScoreResult {
	counts, resolved := countFunctions(r, responses)

	byCode := make(map[string]int, len(counts))
	for i, code := range corpus.FunctionCodes {
		byCode[string(code)] = counts[i]
	}

	return ScoreResult{
		Scores:   normalise(counts, resolved),
		Counts:   byCode,
		Resolved: resolved,
		Ignored:  len(responses) - resolved,
	}
}
