package corpus

import "fmt"

// Archetype is a behavioural-role tag used only as a sampling balance dimension.
type Archetype string

const (
	Hero      Archetype = "hero"
	Caregiver Archetype = "caregiver"
	Explorer  Archetype = "explorer"
	Sage      Archetype = "sage"
	Trickster Archetype = "trickster"
	Ruler     Archetype = "ruler"
	Creator   Archetype = "creator"
	Rebel     Archetype = "rebel"
)

// Archetypes is the fixed archetype order the sampler fills in.
var Archetypes = [8]Archetype{Hero, Caregiver, Explorer, Sage, Trickster, Ruler, Creator, Rebel}

// ParseArchetype validates an archetype identifier.
func ParseArchetype(s string) (Archetype, error) {
	for _, a := range Archetypes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown archetype %q", s)
}

// ContextPolarity tells whether a situational context shows the persona or the shadow.
type ContextPolarity string

const (
	PolarityPersona ContextPolarity = "persona"
	PolarityShadow  ContextPolarity = "shadow"
)

// SituationContext is a life-situation tag, the second sampling balance dimension.
type SituationContext string

const (
	WorkPressure      SituationContext = "work_pressure"
	SocialGathering   SituationContext = "social_gathering"
	CloseRelationship SituationContext = "close_relationship"
	Learning          SituationContext = "learning"
	Conflict          SituationContext = "conflict"
	Setback           SituationContext = "setback"
	Uncertainty       SituationContext = "uncertainty"
)

// SituationContexts is the fixed context order.
var SituationContexts = [7]SituationContext{
	WorkPressure, SocialGathering, CloseRelationship, Learning, Conflict, Setback, Uncertainty,
}

// ParseSituationContext validates a context identifier.
func ParseSituationContext(s string) (SituationContext, error) {
	for _, c := range SituationContexts {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown situational context %q", s)
}

// Polarity is derived 1:1 from the context.
func (c SituationContext) Polarity() ContextPolarity {
	switch c {
	case Conflict, Setback, Uncertainty:
		return PolarityShadow
	default:
		return PolarityPersona
	}
}

// Index returns the position of the context in SituationContexts, or -1.
func (c SituationContext) Index() int {
	for i, sc := range SituationContexts {
		if sc == c {
			return i
		}
	}
	return -1
}
