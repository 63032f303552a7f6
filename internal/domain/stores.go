package domain

import (
	"context"
)

// EpisodicStore is the append-only ordered log of interactions.
// Append is the only mutation; existing records are never rewritten.
type EpisodicStore interface {
	// Append assigns the record's ID and sequence number and persists it.
	Append(ctx context.Context, in *Interaction) error
	// ReadWindow returns the most recent n records in store order
	// (oldest of the window first). n <= 0 returns all records.
	ReadWindow(ctx context.Context, n int) ([]Interaction, error)
	Count(ctx context.Context) (int, error)
}

// BeliefStore persists the belief set as one document.
type BeliefStore interface {
	Load(ctx context.Context) ([]Belief, error)
	// Save replaces the belief set and records the reflection counter.
	Save(ctx context.Context, beliefs []Belief, reflectionCount int) error
	ReflectionCount(ctx context.Context) (int, error)
}

// PatternStore persists patterns, the archetype profile, and
// compression metadata as one document.
type PatternStore interface {
	Load(ctx context.Context) (*PatternDocument, error)
	Save(ctx context.Context, doc *PatternDocument) error
}

// TensionStore persists the current tension set as one document.
type TensionStore interface {
	Load(ctx context.Context) ([]Tension, error)
	Save(ctx context.Context, tensions []Tension) error
}

// Oracle is the injected reasoning capability. Implementations take a
// prompt and a sampling temperature and return generated text. Any
// conforming implementation is substitutable, including deterministic
// test doubles.
type Oracle interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}
