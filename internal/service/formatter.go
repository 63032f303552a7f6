package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

const (
	// formatterBeliefLimit and formatterPatternLimit bound the injected
	// block so it never dominates the prompt budget.
	formatterBeliefLimit  = 10
	formatterPatternLimit = 5

	// activeTensionSeverity is the floor above which a tension is
	// surfaced in the injected block.
	activeTensionSeverity float32 = 0.5
)

// Formatter renders the stored profile into prompt-ready markdown
// blocks. Every block is bounded and entries are never truncated
// mid-line; when a store is empty its block is the empty string.
type Formatter struct {
	beliefs  domain.BeliefStore
	patterns domain.PatternStore
	tensions domain.TensionStore
}

func NewFormatter(beliefs domain.BeliefStore, patterns domain.PatternStore, tensions domain.TensionStore) *Formatter {
	return &Formatter{beliefs: beliefs, patterns: patterns, tensions: tensions}
}

// FormatBeliefBlock returns the belief section, strongest first.
func (f *Formatter) FormatBeliefBlock(ctx context.Context) (string, error) {
	beliefs, err := f.beliefs.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load beliefs: %w", err)
	}
	if len(beliefs) == 0 {
		return "", nil
	}

	sorted := append([]domain.Belief{}, beliefs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })
	if len(sorted) > formatterBeliefLimit {
		sorted = sorted[:formatterBeliefLimit]
	}

	var b strings.Builder
	b.WriteString("## What I know about you (domain beliefs)\n\n")
	for _, belief := range sorted {
		fmt.Fprintf(&b, "- %s (%.0f%%)\n", belief.Statement, belief.Confidence*100)
	}
	b.WriteString("\n")
	return b.String(), nil
}

// FormatCognitiveBlock returns the pattern section with the dominant
// archetype and any active tensions, plus a short instruction on how
// the profile should shape responses.
func (f *Formatter) FormatCognitiveBlock(ctx context.Context) (string, error) {
	doc, err := f.patterns.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load patterns: %w", err)
	}
	if len(doc.Patterns) == 0 {
		return "", nil
	}
	tensions, err := f.tensions.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load tensions: %w", err)
	}

	sorted := append([]domain.CognitivePattern{}, doc.Patterns...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })
	if len(sorted) > formatterPatternLimit {
		sorted = sorted[:formatterPatternLimit]
	}

	var b strings.Builder
	b.WriteString("## Cognitive Signature (how this user thinks)\n\n")
	for _, p := range sorted {
		fmt.Fprintf(&b, "- %s (%.0f%%)\n", p.Description, p.Confidence*100)
	}

	if doc.Archetype != nil && doc.Archetype.Dominant != "" {
		fmt.Fprintf(&b, "\nDominant decision archetype: %s\n", doc.Archetype.Dominant)
	}

	active := make([]domain.Tension, 0, len(tensions))
	for _, t := range tensions {
		if t.Severity > activeTensionSeverity && t.Question != "" {
			active = append(active, t)
		}
	}
	if len(active) > 0 {
		b.WriteString("\nActive cognitive tensions:\n")
		for _, t := range active {
			fmt.Fprintf(&b, "- %s\n", t.Question)
		}
	}

	b.WriteString("\nWhen responding: align with cognitive style. " +
		"Flag contradictions to archetype. " +
		"Apply cross-domain transfer when relevant. " +
		"No lists. Direct prose only. Name patterns by label.\n")
	return b.String(), nil
}

// ContextBlock combines both sections for injection into a chat prompt.
func (f *Formatter) ContextBlock(ctx context.Context) (string, error) {
	cognitive, err := f.FormatCognitiveBlock(ctx)
	if err != nil {
		return "", err
	}
	beliefs, err := f.FormatBeliefBlock(ctx)
	if err != nil {
		return "", err
	}
	return cognitive + beliefs, nil
}
