// Package ingest normalizes platform-specific export formats into
// canonical interactions and appends them to the episodic store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/tagging"
)

var (
	// ErrUnknownPlatform is returned when neither an explicit tag nor
	// detection identifies the input. Detection fails closed.
	ErrUnknownPlatform = errors.New("unknown or undetectable platform")
	// ErrUnreadableInput is returned when the input file or content
	// cannot be read or decoded at all.
	ErrUnreadableInput = errors.New("unreadable input")
)

const (
	// minTextChars is the shared post-filter threshold: trimmed text
	// shorter than this is low-signal and skipped.
	minTextChars = 15

	// certaintyTyped is the ingestion confidence for clearly-typed
	// platform fields; certaintyGeneric for fallback/synonym parsing.
	certaintyTyped   float32 = 0.9
	certaintyGeneric float32 = 0.6
)

// systemMessagePattern matches recognizable automated or placeholder
// content that carries no user signal.
var systemMessagePattern = regexp.MustCompile(`(?i)(<media omitted>|image omitted|video omitted|audio omitted|sticker omitted|document omitted|messages and calls are end-to-end encrypted|created group|added you|joined using|left the group|changed the subject|changed this group|security code changed|missed voice call|missed video call)`)

// candidate is one raw record produced by a platform parser, before the
// shared post-filter runs.
type candidate struct {
	question     string
	answer       string
	timestamp    time.Time
	tags         []string
	authorIsUser bool
	certainty    float32

	// discard marks a record whose authorship could not be resolved;
	// it still counts toward total_parsed.
	discard       bool
	discardReason string
}

// Result is the ingestion summary for one run.
type Result struct {
	Platform    domain.Platform `json:"platform"`
	Ingested    int             `json:"ingested_count"`
	Skipped     int             `json:"skipped_count"`
	TotalParsed int             `json:"total_parsed_count"`
	Errors      []string        `json:"errors,omitempty"`
}

// Summary renders the one-line human summary.
func (r *Result) Summary() string {
	s := fmt.Sprintf("[%s] %d ingested | %d skipped | %d total parsed",
		r.Platform, r.Ingested, r.Skipped, r.TotalParsed)
	if len(r.Errors) > 0 {
		s += fmt.Sprintf(" | %d errors", len(r.Errors))
	}
	return s
}

// Service converts raw exports into interactions and appends survivors
// to the episodic store.
type Service struct {
	episodic domain.EpisodicStore
	logger   *zap.Logger
}

func NewService(episodic domain.EpisodicStore, logger *zap.Logger) *Service {
	return &Service{episodic: episodic, logger: logger}
}

// IngestFile reads the export at path and ingests it. Platform is
// detected from the filename and content when empty.
func (s *Service) IngestFile(ctx context.Context, path string, platform domain.Platform, userHandle string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableInput, err)
	}
	content := string(data)

	if platform == "" {
		platform, err = DetectPlatform(filepath.Base(path), content)
		if err != nil {
			return nil, err
		}
	}
	return s.Ingest(ctx, content, platform, userHandle)
}

// Ingest parses raw export content for the given platform and appends
// surviving records to the episodic store. Per-record parse failures
// degrade to skip counts; only whole-input failures return an error.
func (s *Service) Ingest(ctx context.Context, content string, platform domain.Platform, userHandle string) (*Result, error) {
	if !domain.ValidIngestPlatform(string(platform)) {
		names := make([]string, len(domain.IngestPlatforms))
		for i, p := range domain.IngestPlatforms {
			names[i] = string(p)
		}
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownPlatform, platform, strings.Join(names, ", "))
	}
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrUnreadableInput)
	}

	result := &Result{Platform: platform}

	var candidates []candidate
	var diags []string
	var err error

	switch platform {
	case domain.PlatformWhatsApp:
		candidates, diags = parseWhatsApp(content, userHandle)
	case domain.PlatformTwitter:
		candidates, err = parseTwitter(content)
	case domain.PlatformLinkedInPosts:
		candidates, err = parseLinkedInPosts(content)
	case domain.PlatformLinkedInMessages:
		candidates, diags, err = parseLinkedInMessages(content, userHandle)
	case domain.PlatformInstagram:
		candidates, diags, err = parseInstagram(content, userHandle)
	case domain.PlatformTelegram:
		candidates, diags, err = parseTelegram(content, userHandle)
	case domain.PlatformCSV:
		candidates, err = parseGenericCSV(content)
	case domain.PlatformJSON:
		candidates, err = parseGenericJSON(content)
	default:
		return nil, fmt.Errorf("%w: %q has no parser", ErrUnknownPlatform, platform)
	}
	if err != nil {
		return nil, err
	}
	result.Errors = append(result.Errors, diags...)

	for _, c := range candidates {
		result.TotalParsed++
		if reason, drop := s.postFilter(c); drop {
			result.Skipped++
			s.logger.Debug("record skipped",
				zap.String("platform", string(platform)),
				zap.String("reason", reason))
			continue
		}

		in := s.normalize(c, platform)
		if err := s.episodic.Append(ctx, in); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("append failed: %v", err))
			continue
		}
		result.Ingested++
	}

	s.logger.Info("ingest complete",
		zap.String("platform", string(platform)),
		zap.Int("ingested", result.Ingested),
		zap.Int("skipped", result.Skipped),
		zap.Int("total_parsed", result.TotalParsed))

	return result, nil
}

// postFilter applies the shared drop rules that run after per-platform
// extraction and before a record counts as ingested.
func (s *Service) postFilter(c candidate) (string, bool) {
	if c.discard {
		return c.discardReason, true
	}
	text := strings.TrimSpace(c.answer)
	if !utf8.ValidString(text) || !utf8.ValidString(c.question) {
		return "invalid text encoding", true
	}
	if len(text) < minTextChars {
		return "below minimum text length", true
	}
	if systemMessagePattern.MatchString(text) {
		return "system or automated message", true
	}
	return "", false
}

func (s *Service) normalize(c candidate, platform domain.Platform) *domain.Interaction {
	auto := tagging.Tags(c.question + " " + c.answer)
	tags := tagging.Merge(auto, append(c.tags, "source:"+string(platform), "social_media"))

	return &domain.Interaction{
		Timestamp:    c.timestamp,
		Platform:     platform,
		Question:     strings.TrimSpace(c.question),
		Answer:       strings.TrimSpace(c.answer),
		AuthorIsUser: c.authorIsUser,
		Tags:         tags,
		Confidence:   c.certainty,
	}
}

func normalizeHandle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
