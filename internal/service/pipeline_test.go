package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/llm"
	"github.com/mindfold-ai/mindfold/internal/store"
)

// TestPipeline_EndToEnd drives the whole flow against real file stores:
// log interactions, reflect them into beliefs, synthesize patterns, and
// format the result for injection.
func TestPipeline_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	episodic := store.NewEpisodicStore(filepath.Join(dir, "episodic_log.jsonl"))
	beliefs := store.NewBeliefStore(filepath.Join(dir, "beliefs.json"))
	patterns := store.NewPatternStore(filepath.Join(dir, "cognitive_patterns.json"))
	tensions := store.NewTensionStore(filepath.Join(dir, "tensions.json"))

	oracle := llm.NewMockOracle(
		`[{"statement": "prefers local infrastructure", "confidence": 0.9, "evidence": "keeps data on own hardware", "domain": "value"}]`,
		`{
  "cognitive_patterns": [{
    "description": "keeps critical systems under direct control",
    "confidence": 0.8,
    "manifestations": [
      {"domain": "value", "note": "data stays at home"},
      {"domain": "technical_preference", "note": "self-hosted tooling"}
    ]
  }],
  "decision_archetype": {"dominant": "control-first", "distribution": {"control-first": 4, "depth-first": 1}},
  "tensions": []
}`,
	)

	interactionSvc := NewInteractionService(episodic, testLogger())
	reflectionSvc := NewReflectionService(episodic, beliefs, oracle, ReflectionConfig{Window: 2}, testLogger())
	synthesisSvc := NewSynthesisService(episodic, beliefs, patterns, tensions, oracle, SynthesisConfig{}, testLogger())
	formatter := NewFormatter(beliefs, patterns, tensions)
	gate := NewRelevanceGate()

	// Log two exchanges.
	first, err := interactionSvc.Log(ctx, "Where should the data live?", "On my own hardware, always. I do not trust hosted storage.", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)

	second, err := interactionSvc.Log(ctx, "And backups?", "Encrypted drives at home. Cloud sync is off the table.", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)

	// Reflect the window into beliefs.
	merged, err := reflectionSvc.RunReflection(ctx, 2)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, domain.DomainValue, merged[0].Domain)
	assert.Equal(t, "prefers local infrastructure", merged[0].Statement)
	assert.InDelta(t, 0.9, merged[0].Confidence, 0.001)

	count, err := beliefs.ReflectionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Synthesize the belief set into patterns.
	result, err := synthesisSvc.RunSynthesis(ctx, "")
	require.NoError(t, err)
	require.Len(t, result.Patterns, 1)
	assert.GreaterOrEqual(t, result.Patterns[0].DomainSpan(), 2)
	assert.Empty(t, result.Tensions)

	require.NotNil(t, result.Archetype)
	assert.Equal(t, domain.ArchetypeControlFirst, result.Archetype.Dominant)
	sum := 0
	for _, pct := range result.Archetype.Distribution {
		sum += pct
	}
	assert.Equal(t, 100, sum)

	doc, err := patterns.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.SynthesisCount)
	assert.Equal(t, "2:1", doc.Compression.Ratio)

	// Gate and format for injection.
	assert.False(t, gate.ShouldInjectContext("hi"))
	assert.True(t, gate.ShouldInjectContext("Should I migrate my storage layer to a managed service given my current constraints?"))

	block, err := formatter.ContextBlock(ctx)
	require.NoError(t, err)
	assert.Contains(t, block, "prefers local infrastructure")
	assert.Contains(t, block, "keeps critical systems under direct control")
	assert.Contains(t, block, "control-first")
}
