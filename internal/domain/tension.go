package domain

// Tension is a detected contradiction between two stored statements.
// Severity is in [0,1]; opposing directives on the same resource or goal
// score highest. Tensions are recomputed wholesale on every synthesis run
// since conflicts are relative to the current belief set.
type Tension struct {
	StatementA  string  `json:"statement_a"`
	StatementB  string  `json:"statement_b"`
	Description string  `json:"description"`
	Severity    float32 `json:"severity"`
	Question    string  `json:"question"` // generated clarifying question
}
