package service

import (
	"strings"
	"unicode"
)

// stopwords are excluded from statement similarity so that function
// words do not inflate overlap between unrelated statements.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {},
	"over": {}, "that": {}, "the": {}, "their": {}, "them": {}, "they": {},
	"this": {}, "to": {}, "user": {}, "was": {}, "when": {}, "with": {},
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// statementSimilarity returns the Jaccard overlap of the two
// statements' content-token sets, in [0,1]. This is the tunable policy
// behind "sufficiently similar statement text": exact matching is too
// brittle for oracle-generated restatements, and the threshold is
// config-surfaced so it can be tightened per deployment.
func statementSimilarity(a, b string) float32 {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	intersection := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection
	return float32(intersection) / float32(union)
}
