package service

import (
	"regexp"
	"strings"

	"github.com/tsawler/prose/v3"
)

// Patterns for low-information utterances that never warrant profile
// injection. Matched case-insensitively against the whole message.
var lowInfoPatterns = []string{
	`^(hi|hey|hello|yo|sup|heya)\.?!?$`,
	`^good (morning|afternoon|evening|night)\.?!?$`,
	`^(gm|gn)\.?!?$`,
	`^(bye|goodbye|later|cya|see ya|ttyl)\.?!?$`,
	`^(yes|yeah|yep|yup|no|nope|nah)\.?!?$`,
	`^(ok|okay|k|kk|sure|right|exactly)\.?!?$`,
	`^(got it|gotcha|understood)\.?!?$`,
	`^(thanks|thank you|thx|ty)\.?!?$`,
	`^(cool|nice|great|awesome|perfect)\.?!?$`,
	`^(uh[ -]?huh|mhm|mm|hmm|ah|oh|i see)\.?!?$`,
	`^(sounds good|looks good|lgtm)\.?!?$`,
	`^(👍|✓|✔|✅|🙌|👌|💯|👋)$`,
}

var compiledLowInfo []*regexp.Regexp

func init() {
	compiledLowInfo = make([]*regexp.Regexp, 0, len(lowInfoPatterns))
	for _, p := range lowInfoPatterns {
		compiledLowInfo = append(compiledLowInfo, regexp.MustCompile("(?i)"+p))
	}
}

// minSubstantiveWords is the floor below which a non-matching message
// is still considered too thin to deserve profile context.
const minSubstantiveWords = 3

// RelevanceGate decides whether an incoming chat message is substantive
// enough to justify injecting the cognitive profile into the prompt.
type RelevanceGate struct{}

func NewRelevanceGate() *RelevanceGate {
	return &RelevanceGate{}
}

// ShouldInjectContext reports whether the message carries enough topical
// content for profile injection. Greetings, backchannels, and very short
// messages are rejected outright; everything else must mention at least
// one noun, determined by part-of-speech tagging.
func (g *RelevanceGate) ShouldInjectContext(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}

	for _, re := range compiledLowInfo {
		if re.MatchString(trimmed) {
			return false
		}
	}

	if len(strings.Fields(trimmed)) < minSubstantiveWords {
		return false
	}

	doc, err := prose.NewDocument(trimmed)
	if err != nil {
		// Tagging failure on a substantive-length message: fail open.
		return true
	}
	for _, tok := range doc.Tokens() {
		if strings.HasPrefix(tok.Tag, "NN") {
			return true
		}
	}
	return false
}
