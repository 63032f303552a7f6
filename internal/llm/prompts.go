package llm

import (
	"fmt"
	"strings"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

const reflectionPrompt = `You are a reflection engine. Analyze AI-user interactions and extract durable beliefs
about the user - their goals, preferences, working style, and recurring frustrations.

## Interactions (most recent %d sessions)
%s

## Existing Beliefs
%s

## Task
Return a JSON array of belief objects. Each must have:
  - "statement":  a clear, specific statement about the user (string)
  - "confidence": float 0.0-1.0
  - "evidence":   1-2 sentence summary of supporting evidence (string)
  - "domain":     one of: goal | technical_preference | working_style |
                  frustration | domain_knowledge | value

Rules:
1. Update confidence on existing beliefs if new evidence supports or contradicts.
2. Add new beliefs only if supported by at least 2 interactions.
3. Exclude beliefs with confidence below %.2f.
4. Be specific - "prefers Python" beats "likes coding".
5. Return ONLY the JSON array. No explanation. No markdown fences.`

const synthesisPrompt = `You are a cognitive pattern analyst. You do not analyze WHAT someone thinks.
You analyze HOW they think - their cognitive signature across all domains.

## Domain Beliefs
%s

## Interaction Count
%d total interactions logged.

## Task
Return a single JSON object with these exact keys:

"abstraction_ladder": {
  "observations": [3-6 specific behavioral observations],
  "themes":       [2-4 recurring cross-domain themes],
  "patterns":     [2-3 domain-agnostic cognitive patterns],
  "biases":       [1-2 potential blind spots]
}

"cognitive_patterns": [
  {
    "description":    "precise, domain-agnostic behavioral statement",
    "confidence":     float 0.0-1.0,
    "manifestations": [{"domain": "domain name", "note": "how it shows up there"}],
    "transfer":       "one sentence predicting behavior in a new unseen domain"
  }
]

"decision_archetype": {
  "dominant":     "one of: %s",
  "distribution": {"archetype_name": weight_float}
}

"tensions": [
  {
    "statement_a": "first conflicting statement",
    "statement_b": "second conflicting statement",
    "description": "why they conflict (1-2 sentences)",
    "question":    "the exact question to resolve the tension",
    "severity":    float 0.0-1.0
  }
]

Hard rules:
- Patterns MUST span at least two domains. Single-domain = belief, not pattern.
- "User prefers X" is NOT a pattern. "User applies X-reasoning across Y and Z" IS.
- Tension severity is highest for opposing directives on the same resource or goal.
- Return ONLY the JSON object. No markdown. No explanation.`

const transferPrompt = `You are an AI advisor with deep knowledge of this user's cognitive patterns.

## Cognitive Patterns
%s

## Dominant Archetype: %s

## New Situation
%s

Apply the user's cognitive patterns to this situation.
Name which patterns are relevant. Predict their instinct.
Flag if their instinct contradicts their archetype.
Give a direct recommendation in their cognitive style.
Write in prose. No lists. Be specific. Four to eight sentences.`

// ReflectionPrompt builds the belief-extraction request for one window
// of interactions.
func ReflectionPrompt(window []domain.Interaction, existing []domain.Belief, minConfidence float32) string {
	var sb strings.Builder
	for i, in := range window {
		answer := in.Answer
		if runes := []rune(answer); len(runes) > 300 {
			answer = string(runes[:300]) + "..."
		}
		fmt.Fprintf(&sb, "[%d] Q: %s\n     A: %s\n     Tags: %s | Confidence: %.2f\n\n",
			i+1, in.Question, answer, strings.Join(in.Tags, ", "), in.Confidence)
	}

	existingBlock := "None yet."
	if len(existing) > 0 {
		var eb strings.Builder
		for _, b := range existing {
			fmt.Fprintf(&eb, "- [%s] %s (%.2f)\n", b.Domain, b.Statement, b.Confidence)
		}
		existingBlock = eb.String()
	}

	return fmt.Sprintf(reflectionPrompt, len(window), sb.String(), existingBlock, minConfidence)
}

// SynthesisPrompt builds the cross-domain pattern-extraction request
// over the full belief set.
func SynthesisPrompt(beliefs []domain.Belief, interactionCount int) string {
	var sb strings.Builder
	for _, b := range beliefs {
		fmt.Fprintf(&sb, "- [%s] %s (confidence %.2f)\n", b.Domain, b.Statement, b.Confidence)
	}

	names := make([]string, len(domain.Archetypes))
	for i, a := range domain.Archetypes {
		names[i] = string(a)
	}

	return fmt.Sprintf(synthesisPrompt, sb.String(), interactionCount, strings.Join(names, ", "))
}

// TransferPrompt applies already-computed patterns and the dominant
// archetype to a new situation. It never asks the oracle to re-derive
// patterns.
func TransferPrompt(patterns []domain.CognitivePattern, dominant domain.Archetype, situation string) string {
	var sb strings.Builder
	for _, p := range patterns {
		fmt.Fprintf(&sb, "- %s (confidence %.2f; transfer: %s)\n", p.Description, p.Confidence, p.Transfer)
	}
	return fmt.Sprintf(transferPrompt, sb.String(), dominant, situation)
}
