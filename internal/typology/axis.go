package typology

import (
	"github.com/ZanzyTHEbar/function-o-meter/internal/analysis"
	"github.com/ZanzyTHEbar/function-o-meter/internal/corpus"
)

type dichotomies struct {
	ei, ns, tf string
}

func sharedDichotomies(s analysis.FunctionScores) dichotomies {
	return dichotomies{
		ei: pick(
			total(s, corpus.Ne, corpus.Se, corpus.Te, corpus.Fe),
			total(s, corpus.Ni, corpus.Si, corpus.Ti, corpus.Fi),
			"E", "I"),
		ns: pick(total(s, corpus.Ne, corpus.Ni), total(s, corpus.Se, corpus.Si), "N", "S"),
		tf: pick(total(s, corpus.Te, corpus.Ti), total(s, corpus.Fe, corpus.Fi), "T", "F"),
	}
}

// AxisType compares opposing totals. J/P is judged only inside the attitude
// chosen for E/I and is Unresolved when E/I ties.
func AxisType(s analysis.FunctionScores) string {
	d := sharedDichotomies(s)

	var jp string
	switch d.ei {
	case "E":
		jp = pick(total(s, corpus.Te, corpus.Fe), total(s, corpus.Ne, corpus.Se), "J", "P")
	case "I":
		jp = pick(total(s, corpus.Ti, corpus.Fi), total(s, corpus.Ni, corpus.Si), "J", "P")
	default:
		jp = Unresolved
	}

	return d.ei + d.ns + d.tf + jp
}

// MyersType shares E/I, S/N and T/F with AxisType; J/P weighs every judging
// function against every perceiving one regardless of attitude.
func MyersType(s analysis.FunctionScores) string {
	d := sharedDichotomies(s)
	// S is listed first here; the comparison is symmetric so the letter matches AxisType.
	sn := pick(total(s, corpus.Se, corpus.Si), total(s, corpus.Ne, corpus.Ni), "S", "N")
	jp := pick(
		total(s, corpus.Te, corpus.Ti, corpus.Fe, corpus.Fi),
		total(s, corpus.Ne, corpus.Ni, corpus.Se, corpus.Si),
		"J", "P")

	return d.ei + sn + d.tf + jp
}
