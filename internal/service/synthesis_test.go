package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/llm"
)

const synthesisFixture = `{
  "abstraction_ladder": {
    "observations": ["self-hosts every service they rely on", "reads source before adopting a tool"],
    "themes": ["ownership over convenience"],
    "patterns": ["evaluates tools by exit cost"],
    "biases": ["may over-invest in infrastructure control"]
  },
  "cognitive_patterns": [
    {
      "description": "optimizes for control over convenience",
      "confidence": 0.85,
      "manifestations": [
        {"domain": "technical_preference", "note": "self-hosts everything"},
        {"domain": "value", "note": "distrusts managed platforms"}
      ],
      "transfer": "would pick configurable tools over turnkey ones"
    },
    {
      "description": "single-domain habit that should be filtered",
      "confidence": 0.9,
      "manifestations": [
        {"domain": "goal", "note": "only shows up in goals"}
      ]
    },
    {
      "description": "weak hunch below the confidence floor",
      "confidence": 0.4,
      "manifestations": [
        {"domain": "goal", "note": "a"},
        {"domain": "value", "note": "b"}
      ]
    }
  ],
  "decision_archetype": {
    "dominant": "control-first",
    "distribution": {"control-first": 3, "research-first": 1}
  },
  "tensions": [
    {
      "statement_a": "wants to move fast",
      "statement_b": "insists on full control",
      "description": "speed versus control",
      "question": "Which should win on this project?",
      "severity": 1.5
    },
    {
      "statement_a": "",
      "statement_b": "orphaned half",
      "description": "incomplete pair",
      "question": "",
      "severity": 0.4
    }
  ]
}`

func setupSynthesisTest(oracle domain.Oracle) (*SynthesisService, *mockEpisodicStore, *mockBeliefStore, *mockPatternStore, *mockTensionStore) {
	episodic := newMockEpisodicStore()
	beliefs := newMockBeliefStore()
	patterns := newMockPatternStore()
	tensions := newMockTensionStore()
	svc := NewSynthesisService(episodic, beliefs, patterns, tensions, oracle, SynthesisConfig{}, testLogger())
	return svc, episodic, beliefs, patterns, tensions
}

func seedBeliefs(beliefs *mockBeliefStore) {
	beliefs.beliefs = []domain.Belief{
		{ID: "b1", Domain: domain.DomainTechnicalPreference, Statement: "prefers local infrastructure", Confidence: 0.9},
		{ID: "b2", Domain: domain.DomainValue, Statement: "values ownership of data", Confidence: 0.8},
	}
}

func TestSynthesis_NoBeliefsFailsBeforeOracle(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, _, _, patterns, _ := setupSynthesisTest(oracle)

	_, err := svc.RunSynthesis(context.Background(), "")
	if !errors.Is(err, ErrNoBeliefs) {
		t.Fatalf("expected ErrNoBeliefs, got %v", err)
	}
	if len(oracle.Calls) != 0 {
		t.Fatalf("oracle should not be called without beliefs, got %d calls", len(oracle.Calls))
	}
	if patterns.saveCalls != 0 {
		t.Fatal("pattern store should be untouched")
	}
}

func TestSynthesis_FiltersPatternsAndSaves(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, episodic, beliefs, patterns, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	for i := 0; i < 4; i++ {
		logTestInteraction(t, episodic, "an interaction with enough text")
	}

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Patterns) != 1 {
		t.Fatalf("expected 1 surviving pattern, got %d", len(result.Patterns))
	}
	if result.Patterns[0].DomainSpan() < 2 {
		t.Fatal("surviving pattern must span at least two domains")
	}

	if patterns.doc.SynthesisCount != 1 {
		t.Fatalf("expected synthesis count 1, got %d", patterns.doc.SynthesisCount)
	}
	if patterns.doc.Compression.TotalEvents != 4 || patterns.doc.Compression.TotalPatterns != 1 {
		t.Fatalf("unexpected compression: %+v", patterns.doc.Compression)
	}
	if patterns.doc.Compression.Ratio != "4:1" {
		t.Fatalf("expected ratio 4:1, got %q", patterns.doc.Compression.Ratio)
	}
}

func TestSynthesis_AbstractionLadderPersisted(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, episodic, beliefs, patterns, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Ladder.Empty() {
		t.Fatal("expected a populated abstraction ladder")
	}
	if len(result.Ladder.Observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(result.Ladder.Observations))
	}
	if got := patterns.doc.Ladder; len(got.Themes) != 1 || got.Themes[0] != "ownership over convenience" {
		t.Fatalf("expected ladder persisted with the pattern document, got %+v", got)
	}
	if len(patterns.doc.Ladder.Biases) != 1 {
		t.Fatalf("expected 1 bias, got %d", len(patterns.doc.Ladder.Biases))
	}
}

func TestSynthesis_ArchetypePercentagesSumTo100(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, episodic, beliefs, _, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Archetype == nil {
		t.Fatal("expected archetype profile")
	}

	sum := 0
	for _, pct := range result.Archetype.Distribution {
		sum += pct
	}
	if sum != 100 {
		t.Fatalf("expected distribution to sum to 100, got %d (%v)", sum, result.Archetype.Distribution)
	}
	if result.Archetype.Dominant != domain.ArchetypeControlFirst {
		t.Fatalf("expected control-first dominant, got %s", result.Archetype.Dominant)
	}
	if result.Archetype.Distribution[domain.ArchetypeControlFirst] != 75 {
		t.Fatalf("expected 75%% control-first, got %d", result.Archetype.Distribution[domain.ArchetypeControlFirst])
	}
}

func TestSynthesis_ArchetypeEqualWeightsTieBreak(t *testing.T) {
	fixture := `{
  "cognitive_patterns": [],
  "decision_archetype": {
    "dominant": "research-first",
    "distribution": {"research-first": 1, "depth-first": 1, "simplicity-first": 1}
  },
  "tensions": []
}`
	oracle := llm.NewMockOracle(fixture)
	svc, episodic, beliefs, _, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	sum := 0
	for _, pct := range result.Archetype.Distribution {
		sum += pct
	}
	if sum != 100 {
		t.Fatalf("expected 100, got %d (%v)", sum, result.Archetype.Distribution)
	}
	// research-first precedes depth-first and simplicity-first in the
	// fixed archetype order, so it takes the leftover point and wins.
	if result.Archetype.Distribution[domain.ArchetypeResearchFirst] != 34 {
		t.Fatalf("expected research-first 34, got %v", result.Archetype.Distribution)
	}
	if result.Archetype.Dominant != domain.ArchetypeResearchFirst {
		t.Fatalf("expected research-first dominant, got %s", result.Archetype.Dominant)
	}
}

func TestSynthesis_TensionsClampedAndReplaced(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, episodic, beliefs, _, tensions := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	tensions.tensions = []domain.Tension{{
		StatementA: "stale", StatementB: "tension", Severity: 0.9,
	}}

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Tensions) != 1 {
		t.Fatalf("expected 1 tension after dropping the incomplete pair, got %d", len(result.Tensions))
	}
	if result.Tensions[0].Severity != 1.0 {
		t.Fatalf("expected severity clamped to 1.0, got %v", result.Tensions[0].Severity)
	}
	if len(tensions.tensions) != 1 || tensions.tensions[0].StatementA != "wants to move fast" {
		t.Fatalf("expected tension store rewritten wholesale, got %+v", tensions.tensions)
	}
}

func TestSynthesis_TransferIsSecondDependentCall(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture, "Given your control-first profile, keep the orchestration in-house.")
	svc, episodic, beliefs, _, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	situation := "Should I use a workflow engine or build my own orchestration?"
	result, err := svc.RunSynthesis(context.Background(), situation)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(oracle.Calls) != 2 {
		t.Fatalf("expected exactly 2 oracle calls, got %d", len(oracle.Calls))
	}
	if !strings.Contains(oracle.Calls[1].Prompt, situation) {
		t.Fatal("transfer prompt should contain the situation")
	}
	if result.TransferResult == "" {
		t.Fatal("expected transfer result")
	}
}

func TestSynthesis_NoTransferWithoutSituation(t *testing.T) {
	oracle := llm.NewMockOracle(synthesisFixture)
	svc, episodic, beliefs, _, _ := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	result, err := svc.RunSynthesis(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(oracle.Calls) != 1 {
		t.Fatalf("expected single oracle call, got %d", len(oracle.Calls))
	}
	if result.TransferResult != "" {
		t.Fatal("expected no transfer result")
	}
}

func TestSynthesis_MalformedResponse(t *testing.T) {
	oracle := llm.NewMockOracle("no structured output here")
	svc, episodic, beliefs, patterns, tensions := setupSynthesisTest(oracle)
	seedBeliefs(beliefs)
	logTestInteraction(t, episodic, "an interaction with enough text")

	_, err := svc.RunSynthesis(context.Background(), "")
	if !errors.Is(err, ErrOracleResponse) {
		t.Fatalf("expected ErrOracleResponse, got %v", err)
	}
	if patterns.saveCalls != 0 || tensions.saveCalls != 0 {
		t.Fatal("stores should be untouched after unparseable response")
	}
}
