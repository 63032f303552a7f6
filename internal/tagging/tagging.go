// Package tagging assigns cheap keyword tags and heuristic confidence
// scores to interactions before they reach the episodic store.
package tagging

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tagVocabulary is the fixed tag set matched against interaction text.
var tagVocabulary = map[string]*regexp.Regexp{
	"infrastructure": regexp.MustCompile(`\b(docker|k8s|kubernetes|nginx|server|deploy|cloud|aws|gcp|azure|local)\b`),
	"ai_ml":          regexp.MustCompile(`\b(llm|model|embedding|rag|vector|fine.?tun|inference|ollama|mistral|gpt)\b`),
	"python":         regexp.MustCompile(`\b(python|pip|venv|fastapi|flask|django|pydantic)\b`),
	"architecture":   regexp.MustCompile(`\b(architecture|design|pattern|scalab|microservice|monolith|system)\b`),
	"debugging":      regexp.MustCompile(`\b(error|bug|fix|broken|fail|crash|exception|traceback)\b`),
	"preference":     regexp.MustCompile(`\b(prefer|rather|instead|avoid|hate|love|like|dislike|want)\b`),
	"goal":           regexp.MustCompile(`\b(goal|want to|trying to|building|create|launch|ship)\b`),
	"frustration":    regexp.MustCompile(`\b(frustrat|annoy|slow|complic|overengineer|too much|wrong)\b`),
	"spirituality":   regexp.MustCompile(`\b(gita|krishna|karma|jnana|bhakti|dharma|marga|yoga|vedic|spiritual)\b`),
	"correction":     regexp.MustCompile(`\b(no,|wrong|incorrect|not right|that's not|actually,)\b`),
	"investing":      regexp.MustCompile(`\b(invest|stock|market|portfolio|value|p/e|dividend|equity|asset)\b`),
	"learning":       regexp.MustCompile(`\b(learn|study|understand|teach|master|curriculum|course|practice)\b`),
}

var hedgePattern = regexp.MustCompile(`\b(maybe|perhaps|might|could|not sure|unclear|depends|uncertain|possibly)\b`)

// Tags returns the vocabulary tags matching the given text, sorted for
// stable output.
func Tags(text string) []string {
	t := strings.ToLower(text)
	var tags []string
	for tag, pat := range tagVocabulary {
		if pat.MatchString(t) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// Merge combines auto-detected tags with extra tags, deduplicated and
// sorted.
func Merge(auto, extra []string) []string {
	seen := make(map[string]struct{}, len(auto)+len(extra))
	var out []string
	for _, t := range append(append([]string{}, auto...), extra...) {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Confidence scores a chat exchange by hedging-language density in the
// answer, clamped to [0.3, 0.95].
func Confidence(question, answer string) float32 {
	hedges := len(hedgePattern.FindAllString(strings.ToLower(answer), -1))
	score := 0.85 - float64(hedges)*0.08

	words := len(strings.Fields(answer))
	if words > 50 && words < 600 {
		score += 0.05
	}

	score = math.Max(0.3, math.Min(0.95, score))
	return float32(math.Round(score*100) / 100)
}
