package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

func TestReflectionPrompt(t *testing.T) {
	window := []domain.Interaction{{
		Question:   "Where should the data live?",
		Answer:     "On my own hardware.",
		Tags:       []string{"infrastructure"},
		Confidence: 0.85,
	}}
	existing := []domain.Belief{{
		Domain:     domain.DomainValue,
		Statement:  "prefers local infrastructure",
		Confidence: 0.8,
	}}

	prompt := ReflectionPrompt(window, existing, 0.6)

	for _, want := range []string{
		"Where should the data live?",
		"On my own hardware.",
		"prefers local infrastructure",
		"0.60",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestReflectionPrompt_NoExistingBeliefs(t *testing.T) {
	prompt := ReflectionPrompt([]domain.Interaction{{Answer: "x"}}, nil, 0.6)
	if !strings.Contains(prompt, "None yet.") {
		t.Fatal("expected placeholder for empty belief set")
	}
}

func TestReflectionPrompt_TruncatesLongAnswers(t *testing.T) {
	long := strings.Repeat("a", 500)
	prompt := ReflectionPrompt([]domain.Interaction{{Answer: long}}, nil, 0.6)
	if strings.Contains(prompt, long) {
		t.Fatal("expected long answer to be truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("a", 300)+"...") {
		t.Fatal("expected truncation marker")
	}
}

func TestReflectionPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 400)
	prompt := ReflectionPrompt([]domain.Interaction{{Answer: long}}, nil, 0.6)
	if !utf8.ValidString(prompt) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if !strings.Contains(prompt, strings.Repeat("é", 300)+"...") {
		t.Fatal("expected 300 runes before the truncation marker")
	}
}

func TestSynthesisPrompt_ListsAllArchetypes(t *testing.T) {
	prompt := SynthesisPrompt([]domain.Belief{{
		Domain:    domain.DomainGoal,
		Statement: "wants to ship",
	}}, 42)

	if !strings.Contains(prompt, "42 total interactions") {
		t.Fatal("expected interaction count")
	}
	if !strings.Contains(prompt, `"abstraction_ladder"`) {
		t.Fatal("expected abstraction ladder schema")
	}
	for _, a := range domain.Archetypes {
		if !strings.Contains(prompt, string(a)) {
			t.Fatalf("prompt missing archetype %s", a)
		}
	}
}

func TestTransferPrompt(t *testing.T) {
	prompt := TransferPrompt([]domain.CognitivePattern{{
		Description: "keeps critical systems under direct control",
		Confidence:  0.8,
		Transfer:    "would self-host a new service",
	}}, domain.ArchetypeControlFirst, "Should I adopt a hosted queue?")

	for _, want := range []string{
		"keeps critical systems under direct control",
		"control-first",
		"Should I adopt a hosted queue?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
