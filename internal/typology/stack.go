package typology

import (
	"sort"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// Stack is a dominant/auxiliary pair.
type Stack struct {
	Dominant  corpus.FunctionCode `json:"dominant"`
	Auxiliary corpus.FunctionCode `json:"auxiliary"`
}

// Rank orders the function codes by score, highest first. Equal scores keep
// the enumeration order of corpus.FunctionCodes.
func Rank(s analysis.FunctionScores) []corpus.FunctionCode {
	ranked := make([]corpus.FunctionCode, len(corpus.FunctionCodes))
	copy(ranked, corpus.FunctionCodes[:])
	sort.SliceStable(ranked, func(i, j int) bool {
		return hundredths(s.Get(ranked[i])) > hundredths(s.Get(ranked[j]))
	})
	return ranked
}

// Stacks returns one stack per function sharing the top score. Usually there
// is exactly one.
func Stacks(s analysis.FunctionScores) []Stack {
	ranked := Rank(s)
	top := hundredths(s.Get(ranked[0]))

	var stacks []Stack
	for _, dom := range ranked {
		if hundredths(s.Get(dom)) != top {
			break
		}
		stacks = append(stacks, Stack{Dominant: dom, Auxiliary: auxiliary(dom, ranked)})
	}
	return stacks
}

// auxiliary is the best-ranked function opposite to dom in both attitude and
// category, or the best-ranked other function when none qualifies.
func auxiliary(dom corpus.FunctionCode, ranked []corpus.FunctionCode) corpus.FunctionCode {
	var fallback corpus.FunctionCode
	for _, c := range ranked {
		if c == dom {
			continue
		}
		if fallback == "" {
			fallback = c
		}
		if c.Attitude() != dom.Attitude() && c.Category() != dom.Category() {
			return c
		}
	}
	return fallback
}

// Letters assembles the four-letter code of a stack.
func (st Stack) Letters() string {
	pair := [2]corpus.FunctionCode{st.Dominant, st.Auxiliary}

	sn, tf, jp := Unresolved, Unresolved, Unresolved
	for _, c := range pair {
		if c == "" {
			continue
		}
		if c.Category() == corpus.Perceiving && sn == Unresolved {
			sn = string(c.Function())
		}
		if c.Category() == corpus.Judging && tf == Unresolved {
			tf = string(c.Function())
		}
		// J/P names the category of the extraverted function: Ni-Te gives
		// INTJ because Te judges, Ni-Fe gives INFJ, Ne-Ti gives ENTP.
		if c.Attitude() == corpus.Extraverted && jp == Unresolved {
			jp = c.Category().Letter()
		}
	}

	return st.Dominant.Attitude().Letter() + sn + tf + jp
}

// StackType derives the stack ("Grant") code. When several functions share
// the top score, letters on which their stacks disagree become Unresolved.
func StackType(s analysis.FunctionScores) string {
	stacks := Stacks(s)
	code := []byte(stacks[0].Letters())
	for _, st := range stacks[1:] {
		other := st.Letters()
		for i := range code {
			if code[i] != other[i] {
				code[i] = Unresolved[0]
			}
		}
	}
	return string(code)
}
