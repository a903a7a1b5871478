package corpus

import "strings"

// OptionKeys are the eight answer symbols in presentation order.
const OptionKeys = "ABCDEFGH"

// ParseOptionKey normalises a key ("b", " B ") and reports whether it is one of A..H.
func ParseOptionKey(s string) (string, bool) {
	k := strings.ToUpper(strings.TrimSpace(s))
	if len(k) != 1 || !strings.Contains(OptionKeys, k) {
		return "", false
	}
	return k, true
}

// ScenarioOption is one answer to a scenario, statically mapped to a function code.
type ScenarioOption struct {
	Key      string       `json:"key"`
	Text     string       `json:"text"`
	Function FunctionCode `json:"function"`
}

// Scenario is an immutable corpus item.
type Scenario struct {
	ID               string            `json:"id"`
	Archetype        Archetype         `json:"archetype"`
	SituationContext SituationContext  `json:"situation_context"`
	ContextPolarity  ContextPolarity   `json:"context_polarity"`
	Domain           string            `json:"domain"`
	Text             string            `json:"scenario_text"`
	Options          [8]ScenarioOption `json:"options"`
}

// Option returns the option with the given (already normalised) key.
func (s *Scenario) Option(key string) (ScenarioOption, bool) {
	for _, o := range s.Options {
		if o.Key == key {
			return o, true
		}
	}
	return ScenarioOption{}, false
}

// OptionFor returns the option mapped to the given function code.
func (s *Scenario) OptionFor(code FunctionCode) (ScenarioOption, bool) {
	for _, o := range s.Options {
		if o.Function == code {
			return o, true
		}
	}
	return ScenarioOption{}, false
}
