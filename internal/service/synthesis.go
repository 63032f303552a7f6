package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/llm"
)

// ErrNoBeliefs is returned when synthesis runs before any reflection
// has produced beliefs.
var ErrNoBeliefs = errors.New("no beliefs found; run reflection first")

const (
	synthesizeTemperature float32 = 0.25
	transferTemperature   float32 = 0.5

	// transferPatternLimit bounds how many top patterns the transfer
	// call receives.
	transferPatternLimit = 5
)

// SynthesisConfig carries the tunable pattern policy.
type SynthesisConfig struct {
	MinPatternConfidence float32
	OracleTimeout        time.Duration
}

// SynthesisResult is the output of one synthesis run.
type SynthesisResult struct {
	Ladder         domain.AbstractionLadder  `json:"abstraction_ladder"`
	Patterns       []domain.CognitivePattern `json:"patterns"`
	Archetype      *domain.ArchetypeProfile  `json:"archetype,omitempty"`
	Tensions       []domain.Tension          `json:"tensions"`
	TransferResult string                    `json:"transfer_result,omitempty"`
}

// SynthesisService extracts cross-domain cognitive patterns, the
// decision archetype, and tensions from the full belief set.
type SynthesisService struct {
	episodic domain.EpisodicStore
	beliefs  domain.BeliefStore
	patterns domain.PatternStore
	tensions domain.TensionStore
	oracle   domain.Oracle
	cfg      SynthesisConfig
	logger   *zap.Logger
}

func NewSynthesisService(
	episodic domain.EpisodicStore,
	beliefs domain.BeliefStore,
	patterns domain.PatternStore,
	tensions domain.TensionStore,
	oracle domain.Oracle,
	cfg SynthesisConfig,
	logger *zap.Logger,
) *SynthesisService {
	if cfg.MinPatternConfidence <= 0 {
		cfg.MinPatternConfidence = 0.65
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 180 * time.Second
	}
	return &SynthesisService{
		episodic: episodic,
		beliefs:  beliefs,
		patterns: patterns,
		tensions: tensions,
		oracle:   oracle,
		cfg:      cfg,
		logger:   logger,
	}
}

type synthesisResponse struct {
	AbstractionLadder domain.AbstractionLadder  `json:"abstraction_ladder"`
	CognitivePatterns []domain.CognitivePattern `json:"cognitive_patterns"`
	DecisionArchetype *archetypeCandidate       `json:"decision_archetype"`
	Tensions          []domain.Tension          `json:"tensions"`
}

type archetypeCandidate struct {
	Dominant     string             `json:"dominant"`
	Distribution map[string]float64 `json:"distribution"`
}

// RunSynthesis feeds the full belief set to the oracle, filters and
// validates the result, rewrites the pattern and tension stores, and
// optionally applies the computed profile to a transfer situation.
// Tensions are recomputed wholesale each run. On oracle failure both
// stores keep their prior state.
func (s *SynthesisService) RunSynthesis(ctx context.Context, transferSituation string) (*SynthesisResult, error) {
	beliefSet, err := s.beliefs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load beliefs: %w", err)
	}
	if len(beliefSet) == 0 {
		return nil, ErrNoBeliefs
	}

	totalEvents, err := s.episodic.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}
	existing, err := s.patterns.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}

	s.logger.Info("synthesizing", zap.Int("beliefs", len(beliefSet)), zap.Int("interactions", totalEvents))

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OracleTimeout)
	defer cancel()
	raw, err := s.oracle.Complete(callCtx, llm.SynthesisPrompt(beliefSet, totalEvents), synthesizeTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleFailure, err)
	}

	parsed, err := parseSynthesisResponse(raw)
	if err != nil {
		return nil, err
	}

	result := &SynthesisResult{
		Ladder:    parsed.AbstractionLadder,
		Patterns:  s.filterPatterns(parsed.CognitivePatterns),
		Archetype: s.buildArchetype(parsed.DecisionArchetype),
		Tensions:  filterTensions(parsed.Tensions),
	}

	doc := &domain.PatternDocument{
		SynthesisCount: existing.SynthesisCount + 1,
		Ladder:         result.Ladder,
		Patterns:       result.Patterns,
		Archetype:      result.Archetype,
		Compression: domain.Compression{
			TotalEvents:   totalEvents,
			TotalPatterns: len(result.Patterns),
			Ratio:         compressionRatio(totalEvents, len(result.Patterns)),
		},
	}
	if err := s.patterns.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save patterns: %w", err)
	}
	if err := s.tensions.Save(ctx, result.Tensions); err != nil {
		return nil, fmt.Errorf("save tensions: %w", err)
	}

	if transferSituation != "" {
		transfer, err := s.applyPatterns(ctx, result, transferSituation)
		if err != nil {
			return nil, err
		}
		result.TransferResult = transfer
	}

	s.logger.Info("synthesis complete",
		zap.Int("patterns", len(result.Patterns)),
		zap.Int("tensions", len(result.Tensions)))

	return result, nil
}

// applyPatterns issues the dependent transfer call. It reuses the
// already-computed dominant archetype and top patterns; it never
// re-derives patterns.
func (s *SynthesisService) applyPatterns(ctx context.Context, result *SynthesisResult, situation string) (string, error) {
	top := append([]domain.CognitivePattern{}, result.Patterns...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Confidence > top[j].Confidence })
	if len(top) > transferPatternLimit {
		top = top[:transferPatternLimit]
	}

	dominant := domain.Archetype("unknown")
	if result.Archetype != nil {
		dominant = result.Archetype.Dominant
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OracleTimeout)
	defer cancel()
	out, err := s.oracle.Complete(callCtx, llm.TransferPrompt(top, dominant, situation), transferTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleFailure, err)
	}
	return out, nil
}

// filterPatterns drops candidates below the confidence floor and any
// claiming fewer than two distinct domains.
func (s *SynthesisService) filterPatterns(candidates []domain.CognitivePattern) []domain.CognitivePattern {
	out := make([]domain.CognitivePattern, 0, len(candidates))
	for _, p := range candidates {
		if p.Confidence < s.cfg.MinPatternConfidence {
			continue
		}
		if p.Description == "" || p.DomainSpan() < 2 {
			s.logger.Debug("pattern rejected", zap.String("description", p.Description), zap.Int("domain_span", p.DomainSpan()))
			continue
		}
		out = append(out, p)
	}
	return out
}

// buildArchetype normalizes the oracle's weight distribution into
// integer percentages summing to exactly 100 by largest-remainder
// apportionment. Dominant is the maximum percentage; ties break by the
// declaration order of the archetype set.
func (s *SynthesisService) buildArchetype(c *archetypeCandidate) *domain.ArchetypeProfile {
	if c == nil {
		return nil
	}

	weights := make(map[domain.Archetype]float64)
	total := 0.0
	for name, w := range c.Distribution {
		if !domain.ValidArchetype(name) || w <= 0 {
			continue
		}
		weights[domain.Archetype(name)] = w
		total += w
	}

	if total == 0 {
		if domain.ValidArchetype(c.Dominant) {
			dom := domain.Archetype(c.Dominant)
			return &domain.ArchetypeProfile{
				Dominant:     dom,
				Distribution: map[domain.Archetype]int{dom: 100},
			}
		}
		return nil
	}

	type share struct {
		arch domain.Archetype
		pct  int
		frac float64
	}
	shares := make([]share, 0, len(weights))
	allocated := 0
	for _, arch := range domain.Archetypes { // declaration order fixes tie-breaks below
		w, ok := weights[arch]
		if !ok {
			continue
		}
		exact := w / total * 100
		pct := int(math.Floor(exact))
		shares = append(shares, share{arch: arch, pct: pct, frac: exact - float64(pct)})
		allocated += pct
	}

	sort.SliceStable(shares, func(i, j int) bool { return shares[i].frac > shares[j].frac })
	for i := 0; i < 100-allocated && i < len(shares); i++ {
		shares[i].pct++
	}

	dist := make(map[domain.Archetype]int, len(shares))
	for _, sh := range shares {
		if sh.pct > 0 {
			dist[sh.arch] = sh.pct
		}
	}

	dominant := shares[0].arch
	best := -1
	for _, arch := range domain.Archetypes {
		if pct, ok := dist[arch]; ok && pct > best {
			dominant, best = arch, pct
		}
	}

	return &domain.ArchetypeProfile{Dominant: dominant, Distribution: dist}
}

// filterTensions drops incomplete pairs and clamps severity to [0,1].
func filterTensions(candidates []domain.Tension) []domain.Tension {
	out := make([]domain.Tension, 0, len(candidates))
	for _, t := range candidates {
		if t.StatementA == "" || t.StatementB == "" {
			continue
		}
		if t.Severity < 0 {
			t.Severity = 0
		}
		if t.Severity > 1 {
			t.Severity = 1
		}
		out = append(out, t)
	}
	return out
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func parseSynthesisResponse(raw string) (*synthesisResponse, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	var out synthesisResponse
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return &out, nil
	}
	if match := jsonObjectPattern.FindString(cleaned); match != "" {
		if err := json.Unmarshal([]byte(match), &out); err == nil {
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON synthesis object found (raw: %.200s)", ErrOracleResponse, raw)
}

func compressionRatio(events, patterns int) string {
	if patterns == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d:%d", events, patterns)
}
