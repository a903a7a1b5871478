package analysis

import (
	"sort"
	"strings"
)

// Preprocessor cleans responses before scoring.
type Preprocessor struct {
	allowed map[string]bool
}

// NewPreprocessor restricts responses to allowedIDs. A nil list allows every scenario.
func NewPreprocessor(allowedIDs []string) *Preprocessor {
	p := &Preprocessor{}
	if allowedIDs != nil {
		p.allowed = make(map[string]bool, len(allowedIDs))
		for _, id := range allowedIDs {
			p.allowed[id] = true
		}
	}
	return p
}

// Process normalises, filters and de-duplicates responses. It returns the
// kept responses sorted by scenario id and the number dropped.
func (p *Preprocessor) Process(responses []Response) ([]Response, int) {
	cleaned := p.normalise(responses)
	cleaned = p.filterAllowed(cleaned)
	cleaned = p.collapseDuplicates(cleaned)
	return cleaned, len(responses) - len(cleaned)
}

// normalise trims ids and upper-cases keys; it never mutates the input.
func (p *Preprocessor) normalise(responses []Response) []Response {
	out := make([]Response, 0, len(responses))
	for _, r := range responses {
		out = append(out, Response{
			ScenarioID: strings.TrimSpace(r.ScenarioID),
			OptionKey:  strings.ToUpper(strings.TrimSpace(r.OptionKey)),
		})
	}
	return out
}

func (p *Preprocessor) filterAllowed(responses []Response) []Response {
	if p.allowed == nil {
		return responses
	}
	out := responses[:0]
	for _, r := range responses {
		if p.allowed[r.ScenarioID] {
			out = append(out, r)
		}
	}
	return out
}

// collapseDuplicates keeps one response per scenario. Repeated identical
// answers collapse; a scenario answered with different keys is dropped.
func (p *Preprocessor) collapseDuplicates(responses []Response) []Response {
	keys := make(map[string]string, len(responses))
	conflict := make(map[string]bool)
	for _, r := range responses {
		if k, ok := keys[r.ScenarioID]; ok && k != r.OptionKey {
			conflict[r.ScenarioID] = true
			continue
		}
		keys[r.ScenarioID] = r.OptionKey
	}

	out := make([]Response, 0, len(keys))
	for id, key := range keys {
		if conflict[id] {
			continue
		}
		out = append(out, Response{ScenarioID: id, OptionKey: key})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScenarioID < out[j].ScenarioID })
	return out
}
