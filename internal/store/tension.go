package store

import (
	"context"
	"sync"
	"time"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

type tensionDocument struct {
	LastUpdated string           `json:"last_updated"`
	Tensions    []domain.Tension `json:"tensions"`
	Resolved    []domain.Tension `json:"resolved"`
}

// TensionStore persists the current tension set as one JSON document.
// Synthesis rewrites it wholesale on every run.
type TensionStore struct {
	path string
	mu   sync.Mutex
}

func NewTensionStore(path string) *TensionStore {
	return &TensionStore{path: path}
}

func (s *TensionStore) Load(ctx context.Context) ([]domain.Tension, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &tensionDocument{}
	if err := readDocument(s.path, doc); err != nil {
		return nil, err
	}
	return doc.Tensions, nil
}

func (s *TensionStore) Save(ctx context.Context, tensions []domain.Tension) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := tensionDocument{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Tensions:    tensions,
		Resolved:    []domain.Tension{},
	}
	return writeDocument(s.path, doc)
}
