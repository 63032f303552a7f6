package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

// DetectPlatform infers the platform from the filename and, failing
// that, from the content shape. It is a pure function and fails closed:
// when nothing matches it returns ErrUnknownPlatform rather than
// guessing.
func DetectPlatform(filename, content string) (domain.Platform, error) {
	if p, ok := detectByFilename(strings.ToLower(filename)); ok {
		return p, nil
	}
	if p, ok := detectByContent(content); ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: cannot tell what %q contains; pass an explicit platform tag", ErrUnknownPlatform, filename)
}

func detectByFilename(name string) (domain.Platform, bool) {
	switch {
	case strings.Contains(name, "whatsapp"):
		return domain.PlatformWhatsApp, true
	case strings.Contains(name, "tweet") || strings.HasSuffix(name, ".js"):
		return domain.PlatformTwitter, true
	case strings.Contains(name, "message") && strings.HasSuffix(name, ".csv"):
		return domain.PlatformLinkedInMessages, true
	case (strings.Contains(name, "share") || strings.Contains(name, "post")) && strings.HasSuffix(name, ".csv"):
		return domain.PlatformLinkedInPosts, true
	case strings.Contains(name, "telegram") || name == "result.json":
		return domain.PlatformTelegram, true
	case strings.Contains(name, "instagram") || strings.Contains(name, "inbox"):
		return domain.PlatformInstagram, true
	}
	return "", false
}

func detectByContent(content string) (domain.Platform, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", false
	}

	// Twitter archives wrap a JSON array in a JS assignment.
	if strings.HasPrefix(trimmed, "window.") {
		return domain.PlatformTwitter, true
	}

	// Transcript shape: a `date, time - author: text` line near the top.
	for _, line := range firstLines(trimmed, 10) {
		if whatsAppLine.MatchString(line) {
			return domain.PlatformWhatsApp, true
		}
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return detectJSONShape(trimmed)
	}

	// Tabular shape: a header row carrying a known text-column synonym.
	header := firstLines(trimmed, 1)
	if len(header) == 1 && strings.Contains(header[0], ",") {
		for _, col := range strings.Split(header[0], ",") {
			if isTextColumn(col) {
				return domain.PlatformCSV, true
			}
		}
	}

	return "", false
}

func detectJSONShape(content string) (domain.Platform, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if raw, ok := obj["messages"]; ok {
			var msgs []map[string]json.RawMessage
			if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
				if _, ok := msgs[0]["sender_name"]; ok {
					return domain.PlatformInstagram, true
				}
				if _, ok := msgs[0]["from"]; ok {
					return domain.PlatformTelegram, true
				}
				if _, ok := msgs[0]["type"]; ok {
					return domain.PlatformTelegram, true
				}
			}
			return domain.PlatformJSON, true
		}
		return domain.PlatformJSON, true
	}

	var arr []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		if len(arr) > 0 {
			if _, ok := arr[0]["media"]; ok {
				return domain.PlatformInstagram, true
			}
			if _, ok := arr[0]["tweet"]; ok {
				return domain.PlatformTwitter, true
			}
		}
		return domain.PlatformJSON, true
	}

	// Structurally JSON-like but undecodable; refuse to guess.
	return "", false
}

func firstLines(s string, n int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
