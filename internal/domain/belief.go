package domain

// BeliefDomain categorizes an extracted belief.
type BeliefDomain string

const (
	DomainGoal                BeliefDomain = "goal"
	DomainTechnicalPreference BeliefDomain = "technical_preference"
	DomainWorkingStyle        BeliefDomain = "working_style"
	DomainFrustration         BeliefDomain = "frustration"
	DomainKnowledge           BeliefDomain = "domain_knowledge"
	DomainValue               BeliefDomain = "value"
)

func ValidBeliefDomain(d string) bool {
	switch BeliefDomain(d) {
	case DomainGoal, DomainTechnicalPreference, DomainWorkingStyle,
		DomainFrustration, DomainKnowledge, DomainValue:
		return true
	}
	return false
}

// Belief is one extracted, domain-tagged statement about the user.
// Beliefs below the configured minimum confidence are dropped at merge
// time and never stored. A restatement reinforces the existing belief
// instead of inserting a duplicate.
type Belief struct {
	ID                 string       `json:"id"`
	Domain             BeliefDomain `json:"domain"`
	Statement          string       `json:"statement"`
	Confidence         float32      `json:"confidence"`
	Evidence           []string     `json:"evidence,omitempty"`
	FirstSeenSeq       int64        `json:"first_seen_seq"`
	LastReinforcedSeq  int64        `json:"last_reinforced_seq"`
	ReinforcementCount int          `json:"reinforcement_count"`
}
