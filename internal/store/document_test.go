package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

func TestBeliefStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beliefs.json")
	s := NewBeliefStore(path)
	ctx := context.Background()

	beliefs := []domain.Belief{
		{ID: "b1", Domain: domain.DomainGoal, Statement: "wants to ship a side project", Confidence: 0.8},
		{ID: "b2", Domain: domain.DomainValue, Statement: "prefers local infrastructure", Confidence: 0.9},
	}
	if err := s.Save(ctx, beliefs, 3); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != "b1" || loaded[1].Confidence != 0.9 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}

	count, err := s.ReflectionCount(ctx)
	if err != nil || count != 3 {
		t.Fatalf("expected reflection count 3, got %d err %v", count, err)
	}
}

func TestBeliefStore_MissingFileIsEmpty(t *testing.T) {
	s := NewBeliefStore(filepath.Join(t.TempDir(), "beliefs.json"))

	beliefs, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(beliefs) != 0 {
		t.Fatalf("expected no beliefs, got %d", len(beliefs))
	}
}

func TestBeliefStore_DocumentIsHumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beliefs.json")
	s := NewBeliefStore(path)

	err := s.Save(context.Background(), []domain.Belief{
		{ID: "b1", Domain: domain.DomainGoal, Statement: "x", Confidence: 0.7},
	}, 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  ") {
		t.Fatal("expected indented document")
	}
	if !strings.HasSuffix(text, "\n") {
		t.Fatal("expected trailing newline")
	}
}

func TestPatternStore_EmptyLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cognitive_patterns.json")
	s := NewPatternStore(path)
	ctx := context.Background()

	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.SynthesisCount != 0 || len(doc.Patterns) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}

	doc.SynthesisCount = 1
	doc.Ladder = domain.AbstractionLadder{
		Observations: []string{"self-hosts every service they rely on"},
		Themes:       []string{"ownership over convenience"},
		Patterns:     []string{"evaluates tools by exit cost"},
		Biases:       []string{"may over-invest in infrastructure control"},
	}
	doc.Patterns = []domain.CognitivePattern{{
		Description: "optimizes for control over convenience",
		Confidence:  0.8,
		Manifestations: []domain.Manifestation{
			{Domain: domain.DomainTechnicalPreference, Note: "self-hosts everything"},
			{Domain: domain.DomainValue, Note: "avoids vendor lock-in"},
		},
	}}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if doc.LastUpdated == "" {
		t.Fatal("expected LastUpdated to be set on save")
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.SynthesisCount != 1 || len(loaded.Patterns) != 1 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.Patterns[0].DomainSpan() != 2 {
		t.Fatalf("expected domain span 2, got %d", loaded.Patterns[0].DomainSpan())
	}
	if loaded.Ladder.Empty() || loaded.Ladder.Themes[0] != "ownership over convenience" {
		t.Fatalf("ladder round trip mismatch: %+v", loaded.Ladder)
	}
}

func TestTensionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tensions.json")
	s := NewTensionStore(path)
	ctx := context.Background()

	tensions := []domain.Tension{{
		StatementA:  "wants to move fast",
		StatementB:  "insists on exhaustive review",
		Description: "speed versus rigor",
		Severity:    0.7,
		Question:    "Which matters more on this project, speed or rigor?",
	}}
	if err := s.Save(ctx, tensions); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Severity != 0.7 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
