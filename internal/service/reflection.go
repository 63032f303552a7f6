package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/llm"
)

var (
	// ErrEmptyWindow is returned when there are no interactions to
	// reflect on; the oracle is never called in that case.
	ErrEmptyWindow = errors.New("no interactions logged yet")
	// ErrOracleFailure wraps oracle transport errors (timeouts included).
	ErrOracleFailure = errors.New("oracle call failed")
	// ErrOracleResponse is returned when the oracle's output contains
	// no parseable structured section.
	ErrOracleResponse = errors.New("unparseable oracle response")
)

const (
	// ReinforcementConfidenceBoost is added when a belief is restated.
	ReinforcementConfidenceBoost float32 = 0.05
	// MaxBeliefConfidence caps reinforced confidence.
	MaxBeliefConfidence float32 = 1.0

	reflectTemperature float32 = 0.3

	beliefIDLength = 8
)

// ReflectionConfig carries the tunable extraction policy.
type ReflectionConfig struct {
	Window              int           // interactions analyzed per run
	MinBeliefConfidence float32       // extraction floor; lower candidates are dropped, not stored
	SimilarityThreshold float32       // statement overlap at which a candidate reinforces instead of inserting
	OracleTimeout       time.Duration // per-call deadline; expiry leaves stores unchanged
}

// ReflectionService extracts domain-tagged beliefs from a window of
// recent interactions and merges them into the belief store.
type ReflectionService struct {
	episodic domain.EpisodicStore
	beliefs  domain.BeliefStore
	oracle   domain.Oracle
	cfg      ReflectionConfig
	logger   *zap.Logger
}

func NewReflectionService(episodic domain.EpisodicStore, beliefs domain.BeliefStore, oracle domain.Oracle, cfg ReflectionConfig, logger *zap.Logger) *ReflectionService {
	if cfg.Window <= 0 {
		cfg.Window = 50
	}
	if cfg.MinBeliefConfidence <= 0 {
		cfg.MinBeliefConfidence = 0.6
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.6
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 180 * time.Second
	}
	return &ReflectionService{episodic: episodic, beliefs: beliefs, oracle: oracle, cfg: cfg, logger: logger}
}

// beliefCandidate is the oracle's wire shape for one extracted belief.
type beliefCandidate struct {
	Statement  string  `json:"statement"`
	Confidence float32 `json:"confidence"`
	Evidence   string  `json:"evidence"`
	Domain     string  `json:"domain"`
}

// RunReflection analyzes the most recent window of interactions and
// returns the full updated belief list. window <= 0 uses the configured
// default. On any oracle failure the belief store is left untouched.
func (s *ReflectionService) RunReflection(ctx context.Context, window int) ([]domain.Belief, error) {
	if window <= 0 {
		window = s.cfg.Window
	}

	entries, err := s.episodic.ReadWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("read window: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyWindow
	}

	existing, err := s.beliefs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load beliefs: %w", err)
	}
	reflectionCount, err := s.beliefs.ReflectionCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reflection count: %w", err)
	}

	s.logger.Info("reflecting", zap.Int("interactions", len(entries)), zap.Int("existing_beliefs", len(existing)))

	prompt := llm.ReflectionPrompt(entries, existing, s.cfg.MinBeliefConfidence)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OracleTimeout)
	defer cancel()
	raw, err := s.oracle.Complete(callCtx, prompt, reflectTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleFailure, err)
	}

	candidates, err := parseBeliefCandidates(raw)
	if err != nil {
		return nil, err
	}

	latestSeq := entries[len(entries)-1].Seq
	merged := existing
	inserted, reinforced, dropped := 0, 0, 0

	for _, c := range candidates {
		if c.Confidence < s.cfg.MinBeliefConfidence {
			dropped++
			continue
		}
		if c.Statement == "" || !domain.ValidBeliefDomain(c.Domain) {
			dropped++
			s.logger.Debug("belief candidate rejected", zap.String("domain", c.Domain), zap.String("statement", c.Statement))
			continue
		}

		if idx := s.findMatch(merged, c); idx >= 0 {
			b := &merged[idx]
			b.Confidence = min32(b.Confidence+ReinforcementConfidenceBoost, MaxBeliefConfidence)
			if c.Evidence != "" {
				b.Evidence = append(b.Evidence, c.Evidence)
			}
			b.LastReinforcedSeq = latestSeq
			b.ReinforcementCount++
			reinforced++
			continue
		}

		belief := domain.Belief{
			ID:                 uuid.NewString()[:beliefIDLength],
			Domain:             domain.BeliefDomain(c.Domain),
			Statement:          c.Statement,
			Confidence:         c.Confidence,
			FirstSeenSeq:       latestSeq,
			LastReinforcedSeq:  latestSeq,
			ReinforcementCount: 1,
		}
		if c.Evidence != "" {
			belief.Evidence = []string{c.Evidence}
		}
		merged = append(merged, belief)
		inserted++
	}

	if err := s.beliefs.Save(ctx, merged, reflectionCount+1); err != nil {
		return nil, fmt.Errorf("save beliefs: %w", err)
	}

	s.logger.Info("reflection complete",
		zap.Int("inserted", inserted),
		zap.Int("reinforced", reinforced),
		zap.Int("dropped", dropped),
		zap.Int("total_beliefs", len(merged)))

	return merged, nil
}

// findMatch returns the index of an existing belief the candidate
// restates: same domain, statement overlap at or above the threshold.
func (s *ReflectionService) findMatch(beliefs []domain.Belief, c beliefCandidate) int {
	bestIdx := -1
	var bestScore float32
	for i, b := range beliefs {
		if b.Domain != domain.BeliefDomain(c.Domain) {
			continue
		}
		score := statementSimilarity(b.Statement, c.Statement)
		if score >= s.cfg.SimilarityThreshold && score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx
}

var (
	fencePattern     = regexp.MustCompile("```(?:json)?")
	jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
)

// parseBeliefCandidates tolerates minor formatting deviations: markdown
// fences are stripped and, failing a direct decode, the first bracketed
// section is tried. An empty array is valid output.
func parseBeliefCandidates(raw string) ([]beliefCandidate, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	var out []beliefCandidate
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return out, nil
	}
	if match := jsonArrayPattern.FindString(cleaned); match != "" {
		if err := json.Unmarshal([]byte(match), &out); err == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON belief array found (raw: %.200s)", ErrOracleResponse, raw)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
