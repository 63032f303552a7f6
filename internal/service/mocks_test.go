package service

import (
	"context"
	"time"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

// mockEpisodicStore implements domain.EpisodicStore for testing.
type mockEpisodicStore struct {
	entries []domain.Interaction
}

func newMockEpisodicStore() *mockEpisodicStore {
	return &mockEpisodicStore{}
}

func (m *mockEpisodicStore) Append(ctx context.Context, in *domain.Interaction) error {
	in.Seq = int64(len(m.entries) + 1)
	if in.ID == "" {
		in.ID = "test-id"
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	m.entries = append(m.entries, *in)
	return nil
}

func (m *mockEpisodicStore) ReadWindow(ctx context.Context, n int) ([]domain.Interaction, error) {
	all := m.entries
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	out := make([]domain.Interaction, len(all))
	copy(out, all)
	return out, nil
}

func (m *mockEpisodicStore) Count(ctx context.Context) (int, error) {
	return len(m.entries), nil
}

// mockBeliefStore implements domain.BeliefStore for testing.
type mockBeliefStore struct {
	beliefs         []domain.Belief
	reflectionCount int
	saveCalls       int
}

func newMockBeliefStore() *mockBeliefStore {
	return &mockBeliefStore{}
}

func (m *mockBeliefStore) Load(ctx context.Context) ([]domain.Belief, error) {
	out := make([]domain.Belief, len(m.beliefs))
	copy(out, m.beliefs)
	return out, nil
}

func (m *mockBeliefStore) Save(ctx context.Context, beliefs []domain.Belief, reflectionCount int) error {
	m.beliefs = beliefs
	m.reflectionCount = reflectionCount
	m.saveCalls++
	return nil
}

func (m *mockBeliefStore) ReflectionCount(ctx context.Context) (int, error) {
	return m.reflectionCount, nil
}

// mockPatternStore implements domain.PatternStore for testing.
type mockPatternStore struct {
	doc       *domain.PatternDocument
	saveCalls int
}

func newMockPatternStore() *mockPatternStore {
	return &mockPatternStore{doc: &domain.PatternDocument{}}
}

func (m *mockPatternStore) Load(ctx context.Context) (*domain.PatternDocument, error) {
	return m.doc, nil
}

func (m *mockPatternStore) Save(ctx context.Context, doc *domain.PatternDocument) error {
	m.doc = doc
	m.saveCalls++
	return nil
}

// mockTensionStore implements domain.TensionStore for testing.
type mockTensionStore struct {
	tensions  []domain.Tension
	saveCalls int
}

func newMockTensionStore() *mockTensionStore {
	return &mockTensionStore{}
}

func (m *mockTensionStore) Load(ctx context.Context) ([]domain.Tension, error) {
	return m.tensions, nil
}

func (m *mockTensionStore) Save(ctx context.Context, tensions []domain.Tension) error {
	m.tensions = tensions
	m.saveCalls++
	return nil
}
