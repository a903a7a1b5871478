// Package typology projects function scores onto four-letter type codes.
//
// Three schemes are derived independently and may disagree:
//
//   - stack: dominant and auxiliary functions from the score ranking
//   - axis: E/I, N/S and T/F by summed totals, J/P within the chosen attitude
//   - myers: like axis, but J/P compares all judging against all perceiving
//
// Exact ties produce the Unresolved letter instead of a default.
package typology

import (
	"fmt"
	"math"
	"strings"

	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

// Unresolved marks a letter whose dichotomy tied exactly.
const Unresolved = "?"

// Scheme names one derivation.
type Scheme string

const (
	SchemeStack Scheme = "stack"
	SchemeAxis  Scheme = "axis"
	SchemeMyers Scheme = "myers"
)

// Schemes lists the derivations in output order.
var Schemes = []Scheme{SchemeStack, SchemeAxis, SchemeMyers}

// ParseScheme validates a scheme name.
func ParseScheme(s string) (Scheme, error) {
	for _, sc := range Schemes {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown type scheme %q", s)
}

// Types holds the three derived codes.
type Types struct {
	StackType string `json:"stack_type"`
	AxisType  string `json:"axis_type"`
	MyersType string `json:"myers_type"`
}

// Get returns the code for one scheme.
func (t Types) Get(s Scheme) string {
	switch s {
	case SchemeStack:
		return t.StackType
	case SchemeAxis:
		return t.AxisType
	case SchemeMyers:
		return t.MyersType
	}
	return ""
}

// Derive computes all three type codes. It is a pure function of s.
func Derive(s analysis.FunctionScores) Types {
	return Types{
		StackType: StackType(s),
		AxisType:  AxisType(s),
		MyersType: MyersType(s),
	}
}

// UnresolvedLetters counts the tie markers in a code.
func UnresolvedLetters(code string) int {
	return strings.Count(code, Unresolved)
}

// hundredths compares scores on the two-decimal grid they are rounded to.
func hundredths(v float64) int64 {
	return int64(math.Round(v * 100))
}

func total(s analysis.FunctionScores, codes ...corpus.FunctionCode) int64 {
	var sum int64
	for _, c := range codes {
		sum += hundredths(s.Get(c))
	}
	return sum
}

// pick returns a when x > y, b when y > x and Unresolved on a tie.
func pick(x, y int64, a, b string) string {
	switch {
	case x > y:
		return a
	case y > x:
		return b
	default:
		return Unresolved
	}
}
