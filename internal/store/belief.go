package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

type beliefDocument struct {
	LastUpdated     string          `json:"last_updated"`
	ReflectionCount int             `json:"reflection_count"`
	Beliefs         []domain.Belief `json:"beliefs"`
}

// BeliefStore persists the belief set as one pretty-printed JSON
// document so it stays independently editable.
type BeliefStore struct {
	path string
	mu   sync.Mutex
}

func NewBeliefStore(path string) *BeliefStore {
	return &BeliefStore{path: path}
}

func (s *BeliefStore) Load(ctx context.Context) ([]domain.Belief, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	return doc.Beliefs, nil
}

func (s *BeliefStore) Save(ctx context.Context, beliefs []domain.Belief, reflectionCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := beliefDocument{
		LastUpdated:     time.Now().UTC().Format(time.RFC3339),
		ReflectionCount: reflectionCount,
		Beliefs:         beliefs,
	}
	return writeDocument(s.path, doc)
}

func (s *BeliefStore) ReflectionCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	return doc.ReflectionCount, nil
}

func (s *BeliefStore) loadLocked() (*beliefDocument, error) {
	doc := &beliefDocument{}
	if err := readDocument(s.path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// readDocument decodes a JSON document into out. A missing file leaves
// out at its zero value.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, filepath.Base(path), err)
	}
	return nil
}

func writeDocument(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
