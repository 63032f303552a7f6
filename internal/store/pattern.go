package store

import (
	"context"
	"sync"
	"time"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

// PatternStore persists cognitive patterns, the archetype profile, and
// compression metadata as one JSON document.
type PatternStore struct {
	path string
	mu   sync.Mutex
}

func NewPatternStore(path string) *PatternStore {
	return &PatternStore{path: path}
}

func (s *PatternStore) Load(ctx context.Context) (*domain.PatternDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &domain.PatternDocument{}
	if err := readDocument(s.path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PatternStore) Save(ctx context.Context, doc *domain.PatternDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return writeDocument(s.path, doc)
}
