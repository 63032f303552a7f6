package domain

// Archetype names a decision-making tendency.
type Archetype string

const (
	ArchetypeControlFirst    Archetype = "control-first"
	ArchetypeScaleFirst      Archetype = "scale-first"
	ArchetypeResearchFirst   Archetype = "research-first"
	ArchetypeExecutionFirst  Archetype = "execution-first"
	ArchetypeSafetyFirst     Archetype = "safety-first"
	ArchetypeDepthFirst      Archetype = "depth-first"
	ArchetypeSimplicityFirst Archetype = "simplicity-first"
)

// Archetypes is the fixed classification set. Declaration order breaks
// ties when two archetypes receive the same percentage.
var Archetypes = []Archetype{
	ArchetypeControlFirst, ArchetypeScaleFirst, ArchetypeResearchFirst,
	ArchetypeExecutionFirst, ArchetypeSafetyFirst, ArchetypeDepthFirst,
	ArchetypeSimplicityFirst,
}

func ValidArchetype(a string) bool {
	for _, known := range Archetypes {
		if Archetype(a) == known {
			return true
		}
	}
	return false
}

// Manifestation grounds a pattern in one belief domain.
type Manifestation struct {
	Domain BeliefDomain `json:"domain"`
	Note   string       `json:"note"`
}

// CognitivePattern is a cross-domain regularity inferred from beliefs.
// A valid pattern references at least two distinct domains.
type CognitivePattern struct {
	Description    string          `json:"description"`
	Confidence     float32         `json:"confidence"`
	Manifestations []Manifestation `json:"manifestations"`
	Transfer       string          `json:"transfer"` // how the pattern predicts behavior in new situations
}

// DomainSpan returns the number of distinct domains the pattern touches.
func (p CognitivePattern) DomainSpan() int {
	seen := make(map[BeliefDomain]struct{}, len(p.Manifestations))
	for _, m := range p.Manifestations {
		seen[m.Domain] = struct{}{}
	}
	return len(seen)
}

// ArchetypeProfile is a categorical distribution over the fixed archetype
// set, expressed as integer percentages summing to exactly 100.
type ArchetypeProfile struct {
	Dominant     Archetype         `json:"dominant"`
	Distribution map[Archetype]int `json:"distribution"`
}

// AbstractionLadder stacks one synthesis run from specific behavioral
// observations up to potential blind spots.
type AbstractionLadder struct {
	Observations []string `json:"observations"`
	Themes       []string `json:"themes"`
	Patterns     []string `json:"patterns"`
	Biases       []string `json:"biases"`
}

// Empty reports whether no rung holds any entry.
func (l AbstractionLadder) Empty() bool {
	return len(l.Observations) == 0 && len(l.Themes) == 0 &&
		len(l.Patterns) == 0 && len(l.Biases) == 0
}

// Compression summarizes how many raw events the current pattern set
// abstracts over.
type Compression struct {
	TotalEvents   int    `json:"total_events"`
	TotalPatterns int    `json:"total_patterns"`
	Ratio         string `json:"compression_ratio"`
}

// PatternDocument is the persisted pattern/archetype store contents.
type PatternDocument struct {
	LastUpdated    string             `json:"last_updated"`
	SynthesisCount int                `json:"synthesis_count"`
	Ladder         AbstractionLadder  `json:"abstraction_ladder"`
	Patterns       []CognitivePattern `json:"cognitive_patterns"`
	Archetype      *ArchetypeProfile  `json:"decision_archetype,omitempty"`
	Compression    Compression        `json:"experience_compression"`
}
