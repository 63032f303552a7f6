package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindfold-ai/mindfold/internal/domain"
)

// interactionIDLength is the short-id prefix taken from a UUID.
const interactionIDLength = 8

// EpisodicStore is an append-only JSONL log of interactions, one record
// per line. Append is the only mutation; the file is never reordered or
// rewritten, so it stays safe to inspect and tail by hand.
type EpisodicStore struct {
	path string

	mu     sync.Mutex
	seq    int64
	loaded bool
}

func NewEpisodicStore(path string) *EpisodicStore {
	return &EpisodicStore{path: path}
}

func (s *EpisodicStore) Append(ctx context.Context, in *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSeqLocked(); err != nil {
		return err
	}

	s.seq++
	in.Seq = s.seq
	if in.ID == "" {
		in.ID = uuid.NewString()[:interactionIDLength]
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		s.seq--
		return fmt.Errorf("open episodic log: %w", err)
	}
	defer func() { _ = f.Close() }()

	line, err := json.Marshal(in)
	if err != nil {
		s.seq--
		return fmt.Errorf("marshal interaction: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		s.seq--
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

func (s *EpisodicStore) ReadWindow(ctx context.Context, n int) ([]domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAllLocked()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (s *EpisodicStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSeqLocked(); err != nil {
		return 0, err
	}
	return int(s.seq), nil
}

// ensureSeqLocked initializes the sequence counter from the log file on
// first use. Caller must hold s.mu.
func (s *EpisodicStore) ensureSeqLocked() error {
	if s.loaded {
		return nil
	}
	all, err := s.readAllLocked()
	if err != nil {
		return err
	}
	s.seq = int64(len(all))
	s.loaded = true
	return nil
}

func (s *EpisodicStore) readAllLocked() ([]domain.Interaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open episodic log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []domain.Interaction
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var in domain.Interaction
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("%w: episodic log line %d: %v", ErrCorruptDocument, lineNo, err)
		}
		out = append(out, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read episodic log: %w", err)
	}
	return out, nil
}
